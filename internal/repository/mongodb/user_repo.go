package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/user"
	repo "kanban/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDocument) toUser() *user.User {
	return &user.User{ID: d.ID.Hex(), Name: d.Name, CreatedAt: d.CreatedAt}
}

type UserStorage struct {
	coll *mongo.Collection
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	u.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	res, err := s.coll.InsertOne(ctx, userDocument{Name: u.Name, CreatedAt: u.CreatedAt})
	if err != nil {
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	oid, err := objectID(u.ID)
	if err != nil {
		return err
	}

	var doc userDocument
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": u.Name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}

	*u = *doc.toUser()
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return doc.toUser(), nil
}

func (s *UserStorage) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Error("Repository: Не удалось удалить пользователя", err)
		return fmt.Errorf("удаление пользователя: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	defer warnIfSlow(time.Now(), "user.list")

	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Error("Repository: Ошибка чтения курсора", err)
		return nil, fmt.Errorf("чтение курсора: %w", err)
	}

	users := make([]*user.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}
