package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection = "users"
	notesCollection = "notes"
)

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_unique"),
		},
		{
			Keys: bson.D{{Key: "provider", Value: 1}, {Key: "providerUserId", Value: 1}},
			Options: options.Index().
				SetName("users_provider_identity").
				SetPartialFilterExpression(bson.D{{Key: "providerUserId", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(notesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("notes_owner_status_created"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "tags", Value: 1}},
			Options: options.Index().SetName("notes_owner_tags"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create note indexes: %w", err)
	}
	return nil
}

// swapMissError explains a refresh token swap that matched no row, given the result of looking
// the user up afterwards.
func swapMissError(userID string, findErr error) error {
	switch {
	case findErr == nil:
		return apperrors.ErrRefreshTokenMismatch
	case errors.Is(findErr, apperrors.ErrNotFound):
		return apperrors.ErrNotFound
	default:
		return fmt.Errorf("failed to check user %s after refresh token swap: %w", userID, findErr)
	}
}
