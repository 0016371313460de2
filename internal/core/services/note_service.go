package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/core/result"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/SscSPs/notes_app/internal/utils/pagination"
	"github.com/google/uuid"
)

type noteService struct {
	BaseService
	noteRepo portsrepo.NoteRepositoryFacade
}

func NewNoteService(noteRepo portsrepo.NoteRepositoryFacade) portssvc.NoteSvcFacade {
	return &noteService{BaseService: newBaseService(), noteRepo: noteRepo}
}

func (s *noteService) CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) result.Result[*domain.Note] {
	status := domain.NoteStatus(req.Status)
	if status == "" {
		status = domain.NoteStatusActive
	}
	if !status.IsValid() {
		return result.Fail[*domain.Note](apperrors.NewBadRequestError("Invalid note status"))
	}

	now := s.Now()
	note := domain.Note{
		NoteID:      uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		Status:      status,
		Tags:        domain.NormalizeTags(req.Tags),
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if status == domain.NoteStatusArchived {
		note.ArchivedAt = &now
	}

	if err := s.noteRepo.SaveNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save note", slog.String("user_id", userID))
		return result.Fail[*domain.Note](apperrors.NewAppError(apperrors.KindInternal, "Failed to create note", err))
	}
	return result.Ok(&note)
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID string) result.Result[*domain.Note] {
	note, err := s.noteRepo.FindNoteByID(ctx, userID, noteID)
	if err != nil {
		return result.Fail[*domain.Note](s.noteFailure(ctx, err, noteID, "Failed to get note"))
	}
	return result.Ok(note)
}

func (s *noteService) noteFailure(ctx context.Context, err error, noteID, msg string) *apperrors.AppError {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("Note not found")
	}
	s.LogError(ctx, err, msg, slog.String("note_id", noteID))
	return apperrors.NewAppError(apperrors.KindInternal, msg, err)
}

func (s *noteService) ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) result.Result[dto.ListNotesResponse] {
	status := domain.NoteStatus(params.Status)
	if status == "" {
		status = domain.NoteStatusActive
	}
	if !status.IsValid() {
		return result.Fail[dto.ListNotesResponse](apperrors.NewBadRequestError("Invalid note status"))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = dto.DefaultNotesLimit
	}
	if limit > dto.MaxNotesLimit {
		limit = dto.MaxNotesLimit
	}

	filter := domain.NoteFilter{
		UserID: userID,
		Status: status,
		Tag:    params.Tag,
		// One extra row tells us whether another page exists.
		Limit: limit + 1,
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeNoteCursor(params.NextToken)
		if err != nil {
			return result.Fail[dto.ListNotesResponse](apperrors.NewBadRequestError("Invalid nextToken"))
		}
		filter.Cursor = cursor
	}

	notes, err := s.noteRepo.FindNotes(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notes", slog.String("user_id", userID))
		return result.Fail[dto.ListNotesResponse](apperrors.NewAppError(apperrors.KindInternal, "Failed to list notes", err))
	}

	resp := dto.ListNotesResponse{}
	if len(notes) > limit {
		notes = notes[:limit]
		last := notes[len(notes)-1]
		token := pagination.EncodeNoteCursor(last.CreatedAt, last.NoteID)
		resp.NextToken = &token
	}
	resp.Notes = dto.ToNoteResponses(notes)
	return result.Ok(resp)
}

func (s *noteService) ListTags(ctx context.Context, userID string) result.Result[[]string] {
	tags, err := s.noteRepo.FindDistinctTags(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tags", slog.String("user_id", userID))
		return result.Fail[[]string](apperrors.NewAppError(apperrors.KindInternal, "Failed to list tags", err))
	}
	if tags == nil {
		tags = []string{}
	}
	return result.Ok(tags)
}

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) result.Result[struct{}] {
	update := domain.NoteUpdate{Title: req.Title, Content: req.Content, Tags: req.Tags}
	if update.IsEmpty() {
		return result.Fail[struct{}](apperrors.NewBadRequestError("No fields to update"))
	}

	note, err := s.noteRepo.FindNoteByID(ctx, userID, noteID)
	if err != nil {
		return result.Fail[struct{}](s.noteFailure(ctx, err, noteID, "Failed to update note"))
	}
	note.ApplyUpdate(update, s.Now())
	return s.saveChanges(ctx, note, "Failed to update note")
}

func (s *noteService) saveChanges(ctx context.Context, note *domain.Note, msg string) result.Result[struct{}] {
	if err := s.noteRepo.UpdateNote(ctx, *note); err != nil {
		return result.Fail[struct{}](s.noteFailure(ctx, err, note.NoteID, msg))
	}
	return result.Ok(struct{}{})
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	if err := s.noteRepo.DeleteNote(ctx, userID, noteID); err != nil {
		return result.Fail[struct{}](s.noteFailure(ctx, err, noteID, "Failed to delete note"))
	}
	return result.Ok(struct{}{})
}

func (s *noteService) ArchiveNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	note, err := s.noteRepo.FindNoteByID(ctx, userID, noteID)
	if err != nil {
		return result.Fail[struct{}](s.noteFailure(ctx, err, noteID, "Failed to archive note"))
	}
	if err := note.Archive(s.Now()); err != nil {
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindConflict, "Note is already archived", err))
	}
	return s.saveChanges(ctx, note, "Failed to archive note")
}

func (s *noteService) ActivateNote(ctx context.Context, userID, noteID string) result.Result[struct{}] {
	note, err := s.noteRepo.FindNoteByID(ctx, userID, noteID)
	if err != nil {
		return result.Fail[struct{}](s.noteFailure(ctx, err, noteID, "Failed to activate note"))
	}
	if err := note.Activate(s.Now()); err != nil {
		return result.Fail[struct{}](apperrors.NewAppError(apperrors.KindConflict, "Note is already active", err))
	}
	return s.saveChanges(ctx, note, "Failed to activate note")
}
