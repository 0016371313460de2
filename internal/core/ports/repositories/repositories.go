package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo UserRepositoryFacade
	NoteRepo NoteRepositoryFacade
	// Close releases the underlying storage connection.
	Close func(ctx context.Context) error
}
