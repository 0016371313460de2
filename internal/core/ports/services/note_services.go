package services

import (
	"context"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/core/result"
	"github.com/SscSPs/notes_app/internal/dto"
)

// NoteReaderSvc defines read operations for notes.
type NoteReaderSvc interface {
	GetNote(ctx context.Context, userID, noteID string) result.Result[*domain.Note]
	ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) result.Result[dto.ListNotesResponse]
	ListTags(ctx context.Context, userID string) result.Result[[]string]
}

// NoteWriterSvc defines write operations for notes.
type NoteWriterSvc interface {
	CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) result.Result[*domain.Note]
	UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) result.Result[struct{}]
	DeleteNote(ctx context.Context, userID, noteID string) result.Result[struct{}]
}

// NoteLifecycleSvc defines archive state transitions.
type NoteLifecycleSvc interface {
	ArchiveNote(ctx context.Context, userID, noteID string) result.Result[struct{}]
	ActivateNote(ctx context.Context, userID, noteID string) result.Result[struct{}]
}

// NoteSvcFacade combines all note-related service interfaces
type NoteSvcFacade interface {
	NoteReaderSvc
	NoteWriterSvc
	NoteLifecycleSvc
}
