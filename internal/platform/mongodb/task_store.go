package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/redact"
	"github.com/taskly/taskly-api/internal/store"
)

// MongoTaskStore implements store.TaskStore on the tasks collection.
type MongoTaskStore struct {
	tasks  *mongo.Collection
	logger *slog.Logger
}

// NewMongoTaskStore creates a MongoTaskStore. It panics if db is nil.
func NewMongoTaskStore(db *mongo.Database, logger *slog.Logger) *MongoTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoTaskStore{
		tasks:  db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*MongoTaskStore)(nil)

func ownedFilter(id, ownerID uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "user_id": ownerID.String()}
}

// Create implements store.TaskStore.Create.
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	doc := newTaskDocument(task)
	if _, err := s.tasks.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.NewStoreError("task", "create", "task id already exists", store.ErrDuplicate)
		}
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", doc.ID))
		return store.NewStoreError("task", "create", "failed to insert task", err)
	}

	task.CreatedAt = doc.CreatedAt
	task.UpdatedAt = doc.UpdatedAt

	log.Info("task created",
		slog.String("task_id", doc.ID),
		slog.String("user_id", doc.UserID))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner.
func (s *MongoTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.Task, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.tasks.Find(ctx, bson.M{"user_id": ownerID.String()}, opts)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", ownerID.String()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to decode tasks", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			return nil, store.NewStoreError("task", "list", "corrupt task document", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CountByOwner implements store.TaskStore.CountByOwner.
func (s *MongoTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	n, err := s.tasks.CountDocuments(ctx, bson.M{"user_id": ownerID.String()})
	if err != nil {
		return 0, store.NewStoreError("task", "count", "failed to count tasks", err)
	}
	return int(n), nil
}

// GetByIDForOwner implements store.TaskStore.GetByIDForOwner.
func (s *MongoTaskStore) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	return s.decodeOne(ctx, "get", s.tasks.FindOne(ctx, ownedFilter(id, ownerID)))
}

// UpdateForOwner implements store.TaskStore.UpdateForOwner.
func (s *MongoTaskStore) UpdateForOwner(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      string(task.Status),
		"updated_at":  mongoTime(time.Now()),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated, err := s.decodeOne(ctx, "update",
		s.tasks.FindOneAndUpdate(ctx, ownedFilter(task.ID, task.UserID), update, opts))
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.String("task_id", updated.ID.String()),
		slog.String("user_id", updated.UserID.String()))
	return updated, nil
}

// DeleteForOwner implements store.TaskStore.DeleteForOwner.
func (s *MongoTaskStore) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	deleted, err := s.decodeOne(ctx, "delete", s.tasks.FindOneAndDelete(ctx, ownedFilter(id, ownerID)))
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return deleted, nil
}

func (s *MongoTaskStore) decodeOne(ctx context.Context, op string, res *mongo.SingleResult) (*domain.Task, error) {
	var doc taskDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("task query failed",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", op, "query failed", err)
	}
	task, err := doc.toDomain()
	if err != nil {
		return nil, store.NewStoreError("task", op, "corrupt task document", err)
	}
	return task, nil
}
