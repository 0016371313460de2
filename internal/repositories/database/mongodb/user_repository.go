package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/notes_app/internal/models"
	"github.com/SscSPs/notes_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// Ensure MongoUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var m models.User
	err := r.coll.FindOne(ctx, filter).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.coll.InsertOne(ctx, mapping.ToModelUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdateUser rewrites profile fields only. The refresh hash has its own writers.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	set := bson.D{
		{Key: "email", Value: m.Email},
		{Key: "name", Value: m.Name},
		{Key: "provider", Value: m.AuthProvider},
		{Key: "updatedAt", Value: m.LastUpdatedAt},
		{Key: "updatedBy", Value: m.LastUpdatedBy},
	}
	unset := bson.D{}
	if m.PasswordHash != nil {
		set = append(set, bson.E{Key: "passwordHash", Value: *m.PasswordHash})
	} else {
		unset = append(unset, bson.E{Key: "passwordHash", Value: ""})
	}
	if m.ProviderUserID != nil {
		set = append(set, bson.E{Key: "providerUserId", Value: *m.ProviderUserID})
	} else {
		unset = append(unset, bson.E{Key: "providerUserId", Value: ""})
	}
	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: user.UserID}}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateRefreshTokenHash(ctx context.Context, userID string, refreshTokenHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "refreshTokenHash", Value: refreshTokenHash}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SwapRefreshTokenHash relies on single-document atomicity: the filter includes the expected hash.
func (r *MongoUserRepository) SwapRefreshTokenHash(ctx context.Context, userID string, expectedHash string, newHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}, {Key: "refreshTokenHash", Value: expectedHash}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "refreshTokenHash", Value: newHash}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token for user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		_, findErr := r.FindUserByID(ctx, userID)
		return swapMissError(userID, findErr)
	}
	return nil
}
