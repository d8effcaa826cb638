package mongodb

import (
	"context"
	"fmt"
	"time"

	"kanban/internal/logger"
	repo "kanban/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	tasksCollection = "tasks"
	usersCollection = "users"

	slowQuery = time.Millisecond * 100
)

// Storage держит клиент MongoDB и базу с коллекциями tasks и users
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, database string) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к MongoDB", zap.String("database", database))
	return &Storage{client: client, db: client.Database(database)}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		logger.Error("Repository: Ошибка закрытия соединения MongoDB", err)
		return err
	}
	logger.Info("Repository: Закрытие соединения MongoDB")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Tasks() *TaskStorage {
	return &TaskStorage{Storage: s, coll: s.db.Collection(tasksCollection)}
}

func (s *Storage) Users() *UserStorage {
	return &UserStorage{coll: s.db.Collection(usersCollection)}
}

// objectID невалидный hex не может ссылаться на документ
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrNotFound
	}
	return oid, nil
}

func warnIfSlow(start time.Time, op string) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.String("op", op), zap.Duration("ms", time.Since(start)))
	}
}
