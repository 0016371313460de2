package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/notes_app/internal/models"
	"github.com/SscSPs/notes_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNoteRepository struct {
	BaseRepository
}

func newPgxNoteRepository(db *pgxpool.Pool) *PgxNoteRepository {
	return &PgxNoteRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.NoteRepositoryFacade = (*PgxNoteRepository)(nil)

const noteColumns = `note_id, user_id, title, content, status, tags, archived_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanNote(row pgx.Row) (models.Note, error) {
	var m models.Note
	err := row.Scan(
		&m.NoteID,
		&m.UserID,
		&m.Title,
		&m.Content,
		&m.Status,
		&m.Tags,
		&m.ArchivedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxNoteRepository) FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE note_id = $1 AND user_id = $2;`
	m, err := scanNote(r.Pool.QueryRow(ctx, query, noteID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note %s: %w", noteID, err)
	}
	n := mapping.ToDomainNote(m)
	return &n, nil
}

func (r *PgxNoteRepository) FindNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserID}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = "+next(string(filter.Status)))
	}
	if filter.Tag != "" {
		conditions = append(conditions, next(filter.Tag)+" = ANY(tags)")
	}
	if filter.Cursor != nil {
		created := next(filter.Cursor.CreatedAt)
		id := next(filter.Cursor.NoteID)
		conditions = append(conditions, fmt.Sprintf("(created_at, note_id) < (%s, %s)", created, id))
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, note_id DESC`
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	modelNotes := []models.Note{}
	for rows.Next() {
		m, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		modelNotes = append(modelNotes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	return mapping.ToDomainNoteSlice(modelNotes), nil
}

func (r *PgxNoteRepository) FindDistinctTags(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT DISTINCT unnest(tags) AS tag FROM notes WHERE user_id = $1 ORDER BY tag;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect distinct tags: %w", err)
	}
	return tags, nil
}

func (r *PgxNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	query := `INSERT INTO notes (` + noteColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.Pool.Exec(ctx, query,
		m.NoteID,
		m.UserID,
		m.Title,
		m.Content,
		m.Status,
		m.Tags,
		m.ArchivedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

func (r *PgxNoteRepository) UpdateNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	query := `
        UPDATE notes
        SET title = $1, content = $2, status = $3, tags = $4, archived_at = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE note_id = $8 AND user_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Content,
		m.Status,
		m.Tags,
		m.ArchivedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.NoteID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note %s: %w", note.NoteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM notes WHERE note_id = $1 AND user_id = $2;`, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
