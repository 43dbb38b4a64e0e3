package focus

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

type Repository interface {
	CreateSession(ctx context.Context, session *Session) error
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]Session, error)
	AllSessions(ctx context.Context, userID string) ([]Session, error)
	GetSettings(ctx context.Context, userID string) (*models.FocusSettings, error)
	UpsertSettings(ctx context.Context, settings *models.FocusSettings) error
}

type repository struct {
	sessions *mongo.Collection
	settings *mongo.Collection
}

func NewRepository(mongoClient *clients.MongoDB, sessionCollection, settingsCollection string) Repository {
	return &repository{
		sessions: mongoClient.Database.Collection(sessionCollection),
		settings: mongoClient.Database.Collection(settingsCollection),
	}
}

func (r *repository) CreateSession(ctx context.Context, session *Session) error {
	session.CreatedAt = time.Now()

	result, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		logrus.WithError(err).WithField("user_id", session.UserID).Error("Failed to insert focus session")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

func (r *repository) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]Session, error) {
	filter := bson.M{"user_id": userID}

	timeRange := bson.M{}
	if !from.IsZero() {
		timeRange["$gte"] = from
	}
	if !to.IsZero() {
		timeRange["$lte"] = to
	}
	if len(timeRange) > 0 {
		filter["start_time"] = timeRange
	}

	return r.findSessions(ctx, filter)
}

func (r *repository) AllSessions(ctx context.Context, userID string) ([]Session, error) {
	return r.findSessions(ctx, bson.M{"user_id": userID})
}

func (r *repository) findSessions(ctx context.Context, filter bson.M) ([]Session, error) {
	opts := options.Find().SetSort(bson.M{"start_time": -1})

	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find focus sessions")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var sessions []Session
	if err := cursor.All(ctx, &sessions); err != nil {
		logrus.WithError(err).Error("Failed to decode focus sessions")
		return nil, models.ErrDatabaseQuery
	}

	return sessions, nil
}

func (r *repository) GetSettings(ctx context.Context, userID string) (*models.FocusSettings, error) {
	var settings models.FocusSettings
	filter := bson.M{"user_id": userID}

	err := r.settings.FindOne(ctx, filter).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get focus settings")
		return nil, models.ErrDatabaseQuery
	}

	return &settings, nil
}

func (r *repository) UpsertSettings(ctx context.Context, settings *models.FocusSettings) error {
	filter := bson.M{"user_id": settings.UserID}
	update := bson.M{"$set": settings}
	opts := options.Update().SetUpsert(true)

	_, err := r.settings.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", settings.UserID).Error("Failed to upsert focus settings")
		return models.ErrDatabaseUpdate
	}

	return nil
}
