package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Todo        string             `bson:"todo"`
	Description string             `bson:"description"`
	Owner       string             `bson:"owner"`
	Status      task.Status        `bson:"status"`
	Deadline    *time.Time         `bson:"deadline,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func fromTask(t *task.Task) taskDocument {
	return taskDocument{
		Todo:        t.Todo,
		Description: t.Description,
		Owner:       t.Owner,
		Status:      t.Status,
		Deadline:    t.Deadline,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDocument) toTask() *task.Task {
	return &task.Task{
		ID:          d.ID.Hex(),
		Todo:        d.Todo,
		Description: d.Description,
		Owner:       d.Owner,
		Status:      d.Status,
		Deadline:    d.Deadline,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// toMillis обрезает срок до точности хранения mongo, чтобы ответ совпадал с сохранённым
func toMillis(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := t.UTC().Truncate(time.Millisecond)
	return &d
}

type TaskStorage struct {
	*Storage
	coll *mongo.Collection
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	defer warnIfSlow(time.Now(), "task.create")

	// mongo хранит время с точностью до миллисекунд
	now := time.Now().UTC().Truncate(time.Millisecond)
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now
	taskToCreate.Deadline = toMillis(taskToCreate.Deadline)

	res, err := s.coll.InsertOne(ctx, fromTask(taskToCreate))
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", err)
	}

	taskToCreate.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// Update заменяет редактируемые поля документа, createdAt не трогается
func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	defer warnIfSlow(time.Now(), "task.update")

	oid, err := objectID(taskToUpdate.ID)
	if err != nil {
		return err
	}

	set := bson.M{
		"todo":        taskToUpdate.Todo,
		"description": taskToUpdate.Description,
		"owner":       taskToUpdate.Owner,
		"status":      taskToUpdate.Status,
		"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
	}
	update := bson.M{"$set": set}
	if taskToUpdate.Deadline != nil {
		set["deadline"] = *toMillis(taskToUpdate.Deadline)
	} else {
		update["$unset"] = bson.M{"deadline": ""}
	}

	var doc taskDocument
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	*taskToUpdate = *doc.toTask()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return doc.toTask(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	defer warnIfSlow(time.Now(), "task.delete")

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Error("Repository: Удаление задачи", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), "task.list")
	return s.find(ctx, bson.M{})
}

// GetTasksDueBefore незавершённые задачи со сроком раньше deadline
func (s *TaskStorage) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	defer warnIfSlow(time.Now(), "task.due_before")

	filter := bson.M{
		"status":   bson.M{"$ne": task.StatusComplete},
		"deadline": bson.M{"$lt": deadline},
	}
	return s.find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}}).SetLimit(int64(limit)))
}

func (s *TaskStorage) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*task.Task, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Error("Repository: Ошибка чтения курсора", err)
		return nil, fmt.Errorf("чтение курсора: %w", err)
	}

	tasks := make([]*task.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toTask())
	}
	return tasks, nil
}
