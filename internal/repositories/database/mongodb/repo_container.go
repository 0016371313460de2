package mongodb

import (
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// NewRepositoryProvider builds the MongoDB repositories over one database.
// Closing the provider disconnects the client.
func NewRepositoryProvider(client *mongo.Client, databaseName string) portsrepo.RepositoryProvider {
	db := client.Database(databaseName)
	return portsrepo.RepositoryProvider{
		UserRepo: newMongoUserRepository(db),
		NoteRepo: newMongoNoteRepository(db),
		Close:    client.Disconnect,
	}
}
