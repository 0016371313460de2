package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/notes_app/internal/apperrors"
	"github.com/SscSPs/notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/notes_app/internal/models"
	"github.com/SscSPs/notes_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoNoteRepository struct {
	coll *mongo.Collection
}

func newMongoNoteRepository(db *mongo.Database) *MongoNoteRepository {
	return &MongoNoteRepository{coll: db.Collection(notesCollection)}
}

var _ portsrepo.NoteRepositoryFacade = (*MongoNoteRepository)(nil)

func ownedBy(userID, noteID string) bson.D {
	return bson.D{{Key: "_id", Value: noteID}, {Key: "userId", Value: userID}}
}

func (r *MongoNoteRepository) FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	var m models.Note
	if err := r.coll.FindOne(ctx, ownedBy(userID, noteID)).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note %s: %w", noteID, err)
	}
	n := mapping.ToDomainNote(m)
	return &n, nil
}

func (r *MongoNoteRepository) FindNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	query := bson.D{{Key: "userId", Value: filter.UserID}}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: string(filter.Status)})
	}
	if filter.Tag != "" {
		query = append(query, bson.E{Key: "tags", Value: filter.Tag})
	}
	if filter.Cursor != nil {
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: filter.Cursor.CreatedAt}}}},
			bson.D{
				{Key: "createdAt", Value: filter.Cursor.CreatedAt},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: filter.Cursor.NoteID}}},
			},
		}})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	var ms []models.Note
	if err := cursor.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return mapping.ToDomainNoteSlice(ms), nil
}

func (r *MongoNoteRepository) FindDistinctTags(ctx context.Context, userID string) ([]string, error) {
	var tags []string
	err := r.coll.Distinct(ctx, "tags", bson.D{{Key: "userId", Value: userID}}).Decode(&tags)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *MongoNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	if _, err := r.coll.InsertOne(ctx, mapping.ToModelNote(note)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

func (r *MongoNoteRepository) UpdateNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	set := bson.D{
		{Key: "title", Value: m.Title},
		{Key: "content", Value: m.Content},
		{Key: "status", Value: m.Status},
		{Key: "tags", Value: m.Tags},
		{Key: "updatedAt", Value: m.LastUpdatedAt},
		{Key: "updatedBy", Value: m.LastUpdatedBy},
	}
	update := bson.D{}
	if m.ArchivedAt != nil {
		set = append(set, bson.E{Key: "archivedAt", Value: *m.ArchivedAt})
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "archivedAt", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	res, err := r.coll.UpdateOne(ctx, ownedBy(note.UserID, note.NoteID), update)
	if err != nil {
		return fmt.Errorf("failed to update note %s: %w", note.NoteID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoNoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	res, err := r.coll.DeleteOne(ctx, ownedBy(userID, noteID))
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
