package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
)

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]domain.Note
}

var _ portsrepo.NoteRepositoryFacade = (*NoteRepository)(nil)

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]domain.Note)}
}

func (r *NoteRepository) FindNoteByID(_ context.Context, userID, noteID string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	n = cloneNote(n)
	return &n, nil
}

func (r *NoteRepository) FindNotes(_ context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Note, 0)
	for _, n := range r.notes {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if filter.Tag != "" && !slices.Contains(n.Tags, filter.Tag) {
			continue
		}
		if filter.Cursor != nil && !olderThan(n, *filter.Cursor) {
			continue
		}
		out = append(out, cloneNote(n))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].NoteID > out[j].NoteID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *NoteRepository) FindDistinctTags(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *NoteRepository) SaveNote(_ context.Context, note domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.NoteID]; ok {
		return apperrors.ErrDuplicate
	}
	r.notes[note.NoteID] = cloneNote(note)
	return nil
}

func (r *NoteRepository) UpdateNote(_ context.Context, note domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[note.NoteID]
	if !ok || existing.UserID != note.UserID {
		return apperrors.ErrNotFound
	}
	r.notes[note.NoteID] = cloneNote(note)
	return nil
}

func (r *NoteRepository) DeleteNote(_ context.Context, userID, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[noteID]
	if !ok || existing.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.notes, noteID)
	return nil
}

func olderThan(n domain.Note, c domain.NoteCursor) bool {
	if n.CreatedAt.Equal(c.CreatedAt) {
		return n.NoteID < c.NoteID
	}
	return n.CreatedAt.Before(c.CreatedAt)
}

func cloneNote(n domain.Note) domain.Note {
	if n.Tags != nil {
		n.Tags = slices.Clone(n.Tags)
	}
	if n.ArchivedAt != nil {
		t := *n.ArchivedAt
		n.ArchivedAt = &t
	}
	return n
}
