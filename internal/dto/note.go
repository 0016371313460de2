package dto

import (
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
)

const (
	DefaultNotesLimit = 20
	MaxNotesLimit     = 100
)

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Content string   `json:"content" binding:"max=20000"`
	Status  string   `json:"status" binding:"omitempty,notestatus"`
	Tags    []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// UpdateNoteRequest is a partial update. Omitted fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string  `json:"content" binding:"omitempty,max=20000"`
	Tags    []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// ListNotesParams defines query parameters for listing notes.
type ListNotesParams struct {
	Status    string `form:"status" binding:"omitempty,notestatus"`
	Tag       string `form:"tag"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

type NoteResponse struct {
	NoteID     string     `json:"noteID"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	Tags       []string   `json:"tags"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ListNotesResponse wraps one page of notes.
type ListNotesResponse struct {
	Notes     []NoteResponse `json:"notes"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ListTagsResponse wraps the distinct tags of a user.
type ListTagsResponse struct {
	Tags []string `json:"tags"`
}

func ToNoteResponse(n *domain.Note) NoteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteResponse{
		NoteID:     n.NoteID,
		Title:      n.Title,
		Content:    n.Content,
		Status:     string(n.Status),
		Tags:       tags,
		ArchivedAt: n.ArchivedAt,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.LastUpdatedAt,
	}
}

func ToNoteResponses(notes []domain.Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i := range notes {
		out[i] = ToNoteResponse(&notes[i])
	}
	return out
}
