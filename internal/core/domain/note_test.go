package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_ArchiveAndActivate(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	note := domain.Note{
		NoteID:      "n1",
		UserID:      "u1",
		Status:      domain.NoteStatusActive,
		AuditFields: domain.NewAuditFields("u1", created),
	}

	archivedAt := created.Add(time.Hour)
	require.NoError(t, note.Archive(archivedAt))
	assert.Equal(t, domain.NoteStatusArchived, note.Status)
	require.NotNil(t, note.ArchivedAt)
	assert.Equal(t, archivedAt, *note.ArchivedAt)
	assert.Equal(t, archivedAt, note.LastUpdatedAt)

	assert.ErrorIs(t, note.Archive(archivedAt), domain.ErrNoteAlreadyArchived)

	require.NoError(t, note.Activate(archivedAt.Add(time.Hour)))
	assert.Equal(t, domain.NoteStatusActive, note.Status)
	assert.Nil(t, note.ArchivedAt)

	assert.ErrorIs(t, note.Activate(archivedAt), domain.ErrNoteAlreadyActive)
}

func TestNote_ApplyUpdate(t *testing.T) {
	note := domain.Note{Title: "old", Content: "body", Tags: []string{"a"}}
	title := "new"

	note.ApplyUpdate(domain.NoteUpdate{Title: &title}, time.Now())
	assert.Equal(t, "new", note.Title)
	assert.Equal(t, "body", note.Content)
	assert.Equal(t, []string{"a"}, note.Tags)

	note.ApplyUpdate(domain.NoteUpdate{Tags: []string{"x", "", "y", "x"}}, time.Now())
	assert.Equal(t, []string{"x", "y"}, note.Tags)
}

func TestNoteStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status domain.NoteStatus
		want   bool
	}{
		{name: "active", status: domain.NoteStatusActive, want: true},
		{name: "archived", status: domain.NoteStatusArchived, want: true},
		{name: "empty", status: "", want: false},
		{name: "unknown", status: "deleted", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestNoteUpdate_IsEmpty(t *testing.T) {
	assert.True(t, domain.NoteUpdate{}.IsEmpty())
	assert.False(t, domain.NoteUpdate{Tags: []string{}}.IsEmpty())
}
