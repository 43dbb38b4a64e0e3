package note

import (
	"context"
	"errors"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Every query is scoped to the owning user id; a note id from another tenant
// behaves exactly like a missing record.
type Repository interface {
	Create(ctx context.Context, note *Note) error
	ListByUser(ctx context.Context, userID string) ([]Note, error)
	GetByID(ctx context.Context, userID, noteID string) (*Note, error)
	Update(ctx context.Context, userID, noteID string, req *UpdateNoteRequest) error
	Delete(ctx context.Context, userID, noteID string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &repository{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *repository) Create(ctx context.Context, note *Note) error {
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	result, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		logrus.WithError(err).WithField("user_id", note.UserID).Error("Failed to insert note")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		note.ID = oid
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Note, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"updated_at": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find notes")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var notes []Note
	if err := cursor.All(ctx, &notes); err != nil {
		logrus.WithError(err).Error("Failed to decode notes")
		return nil, models.ErrDatabaseQuery
	}

	return notes, nil
}

func (r *repository) GetByID(ctx context.Context, userID, noteID string) (*Note, error) {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	var note Note
	filter := bson.M{"_id": oid, "user_id": userID}

	err = r.collection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to get note")
		return nil, models.ErrDatabaseQuery
	}

	return &note, nil
}

func (r *repository) Update(ctx context.Context, userID, noteID string, req *UpdateNoteRequest) error {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":      req.Title,
			"content":    req.Content,
			"category":   req.Category,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to update note")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, noteID string) error {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to delete note")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}
