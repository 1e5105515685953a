package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/platform/logger"
	"github.com/taskly/taskly-api/internal/redact"
	"github.com/taskly/taskly-api/internal/store"
)

// MongoUserStore implements store.UserStore on the users collection.
type MongoUserStore struct {
	users  *mongo.Collection
	tasks  *mongo.Collection
	logger *slog.Logger
}

// NewMongoUserStore creates a MongoUserStore. It panics if db is nil.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoUserStore{
		users:  db.Collection(UsersCollection),
		tasks:  db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return domain.NewValidationError("password", "must be hashed before storage", domain.ErrEmptyHashedPassword)
	}

	doc := newUserDocument(user)
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", doc.ID))
		return store.NewStoreError("user", "create", "failed to insert user", err)
	}

	user.Email = doc.Email
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt

	log.Info("user created", slog.String("user_id", doc.ID))
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user by email",
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get", "failed to query user", err)
	}
	return doc.toDomain()
}

// DeleteByEmail implements store.UserStore.DeleteByEmail. The user's tasks
// are removed first so no orphans remain if the second step fails.
func (s *MongoUserStore) DeleteByEmail(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrUserNotFound
		}
		return store.NewStoreError("user", "delete", "failed to query user", err)
	}

	if _, err := s.tasks.DeleteMany(ctx, bson.M{"user_id": doc.ID}); err != nil {
		log.Error("failed to delete user tasks", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "delete", "failed to delete user tasks", err)
	}

	res, err := s.users.DeleteOne(ctx, bson.M{"_id": doc.ID})
	if err != nil {
		log.Error("failed to delete user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "delete", "failed to delete user", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.String("user_id", doc.ID))
	return nil
}
