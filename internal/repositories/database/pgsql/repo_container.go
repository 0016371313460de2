package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo: newPgxUserRepository(dbPool),
		NoteRepo: newPgxNoteRepository(dbPool),
		Close: func(context.Context) error {
			dbPool.Close()
			return nil
		},
	}
}
