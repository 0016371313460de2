package domain

import (
	"errors"
	"time"
)

// NoteStatus is the lifecycle state of a note.
type NoteStatus string

const (
	NoteStatusActive   NoteStatus = "active"
	NoteStatusArchived NoteStatus = "archived"
)

// IsValid reports whether s is a known status.
func (s NoteStatus) IsValid() bool {
	return s == NoteStatusActive || s == NoteStatusArchived
}

var (
	ErrNoteAlreadyArchived = errors.New("note is already archived")
	ErrNoteAlreadyActive   = errors.New("note is already active")
)

// Note is a user-owned text note.
type Note struct {
	NoteID     string     `json:"noteID"`
	UserID     string     `json:"userID"` // owner
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     NoteStatus `json:"status"`
	Tags       []string   `json:"tags"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	AuditFields
}

// NoteUpdate carries the optional fields of a partial note update.
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    []string // nil leaves tags unchanged
}

// IsEmpty reports whether the update changes nothing.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil
}

// NoteFilter selects notes in a listing.
type NoteFilter struct {
	UserID string
	Status NoteStatus
	Tag    string
	Limit  int
	// Cursor, when set, restricts the listing to notes strictly older than the given position.
	Cursor *NoteCursor
}

// NoteCursor is a position in a listing ordered by creation time then ID, newest first.
type NoteCursor struct {
	CreatedAt time.Time
	NoteID    string
}

// Archive moves an active note to the archive.
func (n *Note) Archive(now time.Time) error {
	if n.Status == NoteStatusArchived {
		return ErrNoteAlreadyArchived
	}
	n.Status = NoteStatusArchived
	n.ArchivedAt = &now
	n.touch(now)
	return nil
}

// Activate restores an archived note.
func (n *Note) Activate(now time.Time) error {
	if n.Status == NoteStatusActive {
		return ErrNoteAlreadyActive
	}
	n.Status = NoteStatusActive
	n.ArchivedAt = nil
	n.touch(now)
	return nil
}

// ApplyUpdate copies the set fields of u onto the note.
func (n *Note) ApplyUpdate(u NoteUpdate, now time.Time) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Tags != nil {
		n.Tags = NormalizeTags(u.Tags)
	}
	n.touch(now)
}

func (n *Note) touch(now time.Time) {
	n.LastUpdatedAt = now
	n.LastUpdatedBy = n.UserID
}

// NormalizeTags drops empty tags and duplicates while keeping the first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
