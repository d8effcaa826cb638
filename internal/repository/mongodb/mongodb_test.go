package mongodb_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
	"kanban/internal/repository"
	"kanban/internal/repository/mongodb"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MongoTestSuite для интеграционных тестов с MongoDB
type MongoTestSuite struct {
	suite.Suite
	container testcontainers.Container
	storage   *mongodb.Storage
	ctx       context.Context
	dbCounter int
	uri       string
}

func (s *MongoTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "27017")
	require.NoError(s.T(), err)

	s.uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func (s *MongoTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest каждый тест работает в отдельной базе
func (s *MongoTestSuite) SetupTest() {
	s.dbCounter++

	storage, err := mongodb.New(s.ctx, s.uri, fmt.Sprintf("kanban_test_%d", s.dbCounter))
	s.Require().NoError(err)
	s.storage = storage
}

func (s *MongoTestSuite) TearDownTest() {
	if s.storage != nil {
		s.NoError(s.storage.Close(s.ctx))
	}
}

func (s *MongoTestSuite) TestHealthCheck() {
	s.NoError(s.storage.HealthCheck(s.ctx))
}

func (s *MongoTestSuite) TestTask_RoundTrip() {
	tasks := s.storage.Tasks()
	deadline := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	created := &task.Task{
		Todo:        "Write report",
		Description: "quarterly",
		Owner:       task.Unassigned,
		Status:      task.StatusTodo,
		Deadline:    &deadline,
	}
	s.Require().NoError(tasks.Create(s.ctx, created))
	s.Len(created.ID, 24)

	list, err := tasks.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
	s.Equal(created.Todo, list[0].Todo)
	s.Equal(created.Description, list[0].Description)
	s.Equal(created.Owner, list[0].Owner)
	s.Equal(created.Status, list[0].Status)
	s.Require().NotNil(list[0].Deadline)
	s.True(deadline.Equal(*list[0].Deadline))
	s.True(created.CreatedAt.Equal(list[0].CreatedAt))
}

// TestTask_CreateMatchesStored тестирует совпадение ответа Create с прочитанной записью
func (s *MongoTestSuite) TestTask_CreateMatchesStored() {
	tasks := s.storage.Tasks()
	deadline := time.Date(2030, 5, 1, 10, 20, 30, 123456789, time.UTC)

	created := &task.Task{Todo: "Precise", Owner: task.Unassigned, Status: task.StatusTodo, Deadline: &deadline}
	s.Require().NoError(tasks.Create(s.ctx, created))

	got, err := tasks.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Deadline)
	s.True(created.Deadline.Equal(*got.Deadline))
	s.True(created.CreatedAt.Equal(got.CreatedAt))
	s.Equal(123000000, got.Deadline.Nanosecond())
	s.Equal(123456789, deadline.Nanosecond())
}

func (s *MongoTestSuite) TestTask_UpdateClearsDeadline() {
	tasks := s.storage.Tasks()
	deadline := time.Now().Add(time.Hour)

	created := &task.Task{Todo: "Before", Owner: task.Unassigned, Status: task.StatusTodo, Deadline: &deadline}
	s.Require().NoError(tasks.Create(s.ctx, created))

	updated := &task.Task{ID: created.ID, Todo: "After", Owner: "someone", Status: task.StatusComplete}
	s.Require().NoError(tasks.Update(s.ctx, updated))
	s.Equal("After", updated.Todo)
	s.Nil(updated.Deadline)
	s.True(created.CreatedAt.Equal(updated.CreatedAt))

	got, err := tasks.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(task.StatusComplete, got.Status)
	s.Nil(got.Deadline)
}

func (s *MongoTestSuite) TestTask_NotFound() {
	tasks := s.storage.Tasks()

	_, err := tasks.GetByID(s.ctx, "000000000000000000000000")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = tasks.GetByID(s.ctx, "bogus")
	s.ErrorIs(err, repository.ErrNotFound)

	err = tasks.Update(s.ctx, &task.Task{ID: "000000000000000000000000", Todo: "x"})
	s.ErrorIs(err, repository.ErrNotFound)

	s.ErrorIs(tasks.Delete(s.ctx, "000000000000000000000000"), repository.ErrNotFound)
}

func (s *MongoTestSuite) TestTask_DueBefore() {
	tasks := s.storage.Tasks()
	past := time.Now().Add(-time.Hour)

	overdue := &task.Task{Todo: "Overdue", Owner: task.Unassigned, Status: task.StatusTodo, Deadline: &past}
	done := &task.Task{Todo: "Done", Owner: task.Unassigned, Status: task.StatusComplete, Deadline: &past}
	plain := &task.Task{Todo: "Plain", Owner: task.Unassigned, Status: task.StatusTodo}
	for _, tk := range []*task.Task{overdue, done, plain} {
		s.Require().NoError(tasks.Create(s.ctx, tk))
	}

	due, err := tasks.GetTasksDueBefore(s.ctx, time.Now(), 10)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(overdue.ID, due[0].ID)
}

func (s *MongoTestSuite) TestUser_CRUD() {
	users := s.storage.Users()

	for _, name := range []string{"carol", "alice", "bob"} {
		s.Require().NoError(users.Create(s.ctx, &user.User{Name: name}))
	}

	list, err := users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"alice", "bob", "carol"}, []string{list[0].Name, list[1].Name, list[2].Name})

	target := list[0]
	s.Require().NoError(users.Update(s.ctx, &user.User{ID: target.ID, Name: "zed"}))

	got, err := users.GetByID(s.ctx, target.ID)
	s.Require().NoError(err)
	s.Equal("zed", got.Name)

	s.NoError(users.Delete(s.ctx, target.ID))
	s.ErrorIs(users.Delete(s.ctx, target.ID), repository.ErrNotFound)
}

func TestMongoTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в short режиме")
	}
	suite.Run(t, new(MongoTestSuite))
}
