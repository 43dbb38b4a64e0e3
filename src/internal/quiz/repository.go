package quiz

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
	Create(ctx context.Context, quiz *Quiz) error
	ListByUser(ctx context.Context, userID string) ([]Quiz, error)
	GetByID(ctx context.Context, userID, quizID string) (*Quiz, error)
	Update(ctx context.Context, userID, quizID string, req *SaveQuizRequest) error
	Delete(ctx context.Context, userID, quizID string) error
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	ListAttempts(ctx context.Context, userID, quizID string) ([]Attempt, error)
}

type repository struct {
	quizzes  *mongo.Collection
	attempts *mongo.Collection
}

func NewRepository(mongoClient *clients.MongoDB, quizCollection, attemptCollection string) Repository {
	return &repository{
		quizzes:  mongoClient.Database.Collection(quizCollection),
		attempts: mongoClient.Database.Collection(attemptCollection),
	}
}

func (r *repository) Create(ctx context.Context, quiz *Quiz) error {
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt

	result, err := r.quizzes.InsertOne(ctx, quiz)
	if err != nil {
		logrus.WithError(err).WithField("user_id", quiz.UserID).Error("Failed to insert quiz")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Quiz, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"updated_at": -1})

	cursor, err := r.quizzes.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find quizzes")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var quizzes []Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		logrus.WithError(err).Error("Failed to decode quizzes")
		return nil, models.ErrDatabaseQuery
	}

	return quizzes, nil
}

func (r *repository) GetByID(ctx context.Context, userID, quizID string) (*Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	var quiz Quiz
	filter := bson.M{"_id": oid, "user_id": userID}

	err = r.quizzes.FindOne(ctx, filter).Decode(&quiz)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to get quiz")
		return nil, models.ErrDatabaseQuery
	}

	return &quiz, nil
}

func (r *repository) Update(ctx context.Context, userID, quizID string, req *SaveQuizRequest) error {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"questions":   req.Questions,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.quizzes.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to update quiz")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, quizID string) error {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.quizzes.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to delete quiz")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	if _, err := r.attempts.DeleteMany(ctx, bson.M{"quiz_id": oid, "user_id": userID}); err != nil {
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to delete quiz attempts")
		return models.ErrDatabaseDelete
	}

	return nil
}

func (r *repository) CreateAttempt(ctx context.Context, attempt *Attempt) error {
	attempt.CreatedAt = time.Now()

	result, err := r.attempts.InsertOne(ctx, attempt)
	if err != nil {
		logrus.WithError(err).WithField("user_id", attempt.UserID).Error("Failed to insert attempt")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid
	}
	return nil
}

func (r *repository) ListAttempts(ctx context.Context, userID, quizID string) ([]Attempt, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	filter := bson.M{"quiz_id": oid, "user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.attempts.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to find attempts")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var attempts []Attempt
	if err := cursor.All(ctx, &attempts); err != nil {
		logrus.WithError(err).Error("Failed to decode attempts")
		return nil, models.ErrDatabaseQuery
	}

	return attempts, nil
}
