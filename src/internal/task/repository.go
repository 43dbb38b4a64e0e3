package task

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
	Create(ctx context.Context, task *Task) error
	ListByUser(ctx context.Context, userID, status string) ([]Task, error)
	GetByID(ctx context.Context, userID, taskID string) (*Task, error)
	Update(ctx context.Context, userID, taskID string, req *UpdateTaskRequest) error
	UpdateStatus(ctx context.Context, userID, taskID, status string) error
	Delete(ctx context.Context, userID, taskID string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &repository{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *repository) Create(ctx context.Context, task *Task) error {
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		logrus.WithError(err).WithField("user_id", task.UserID).Error("Failed to insert task")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID, status string) ([]Task, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "due_date", Value: 1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find tasks")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		logrus.WithError(err).Error("Failed to decode tasks")
		return nil, models.ErrDatabaseQuery
	}

	return tasks, nil
}

func (r *repository) GetByID(ctx context.Context, userID, taskID string) (*Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	var task Task
	filter := bson.M{"_id": oid, "user_id": userID}

	err = r.collection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to get task")
		return nil, models.ErrDatabaseQuery
	}

	return &task, nil
}

func (r *repository) Update(ctx context.Context, userID, taskID string, req *UpdateTaskRequest) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"priority":    req.Priority,
			"status":      req.Status,
			"due_date":    req.DueDate,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to update task")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, userID, taskID, status string) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to update task status")
		return models.ErrDatabaseUpdate
	}
	if result.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to delete task")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}
