package repositories

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
)

// NoteReader defines read operations for notes. Every lookup is scoped to an owner.
type NoteReader interface {
	// FindNoteByID returns apperrors.ErrNotFound when the note does not exist or belongs to someone else.
	FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error)

	// FindNotes lists notes matching the filter, newest first.
	FindNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error)

	// FindDistinctTags returns every tag used by the owner's notes, sorted.
	FindDistinctTags(ctx context.Context, userID string) ([]string, error)
}

// NoteWriter defines write operations for notes.
type NoteWriter interface {
	SaveNote(ctx context.Context, note domain.Note) error
	// UpdateNote replaces the mutable fields of an existing note.
	UpdateNote(ctx context.Context, note domain.Note) error
	// DeleteNote returns apperrors.ErrNotFound when nothing was deleted.
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NoteRepositoryFacade combines all note-related repository interfaces
type NoteRepositoryFacade interface {
	NoteReader
	NoteWriter
}
