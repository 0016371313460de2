package memory

import (
	"context"

	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
)

func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo: NewUserRepository(),
		NoteRepo: NewNoteRepository(),
		Close:    func(context.Context) error { return nil },
	}
}
