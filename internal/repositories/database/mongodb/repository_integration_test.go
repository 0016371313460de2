//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func Test_MongoRepositories(t *testing.T) {
	container, err := mongodb.Run(context.Background(), "mongo:7")
	defer testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "container with mongo start failed")

	uri, err := container.ConnectionString(t.Context())
	require.NoError(t, err)

	client, err := database.NewMongoClient(t.Context(), uri)
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database("notes_test")
	require.NoError(t, EnsureIndexes(t.Context(), db))
	require.NoError(t, EnsureIndexes(t.Context(), db), "index creation is idempotent")

	users := newMongoUserRepository(db)
	notes := newMongoNoteRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)
	hash := "hash"

	t.Run("users", func(t *testing.T) {
		user := domain.User{
			UserID:       "u1",
			Email:        "a@b.co",
			PasswordHash: &hash,
			AuthProvider: domain.ProviderLocal,
			AuditFields:  domain.NewAuditFields("u1", now),
		}
		require.NoError(t, users.SaveUser(t.Context(), user))
		assert.ErrorIs(t, users.SaveUser(t.Context(), domain.User{UserID: "u2", Email: "a@b.co"}), apperrors.ErrDuplicate)

		got, err := users.FindUserByID(t.Context(), "u1")
		require.NoError(t, err)
		assert.Equal(t, user, *got)

		_, err = users.FindUserByEmail(t.Context(), "nobody@b.co")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		got.Rename("Ada", now)
		require.NoError(t, users.UpdateUser(t.Context(), *got))
		got, err = users.FindUserByID(t.Context(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("refresh token hash", func(t *testing.T) {
		require.NoError(t, users.UpdateRefreshTokenHash(t.Context(), "u1", "h1"))
		require.NoError(t, users.SwapRefreshTokenHash(t.Context(), "u1", "h1", "h2"))
		assert.ErrorIs(t, users.SwapRefreshTokenHash(t.Context(), "u1", "h1", "h3"), apperrors.ErrRefreshTokenMismatch)
		assert.ErrorIs(t, users.UpdateRefreshTokenHash(t.Context(), "missing", ""), apperrors.ErrNotFound)
	})

	t.Run("notes", func(t *testing.T) {
		for i, id := range []string{"n1", "n2", "n3"} {
			n := domain.Note{
				NoteID:      id,
				UserID:      "u1",
				Title:       id,
				Status:      domain.NoteStatusActive,
				Tags:        []string{"go", id},
				AuditFields: domain.NewAuditFields("u1", now.Add(time.Duration(i)*time.Minute)),
			}
			require.NoError(t, notes.SaveNote(t.Context(), n))
		}

		page, err := notes.FindNotes(t.Context(), domain.NoteFilter{UserID: "u1", Status: domain.NoteStatusActive, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "n3", page[0].NoteID)

		rest, err := notes.FindNotes(t.Context(), domain.NoteFilter{
			UserID: "u1",
			Cursor: &domain.NoteCursor{CreatedAt: page[1].CreatedAt, NoteID: page[1].NoteID},
		})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "n1", rest[0].NoteID)

		tags, err := notes.FindDistinctTags(t.Context(), "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "n1", "n2", "n3"}, tags)

		require.NoError(t, notes.DeleteNote(t.Context(), "u1", "n1"))
		assert.ErrorIs(t, notes.DeleteNote(t.Context(), "u1", "n1"), apperrors.ErrNotFound)
	})
}
