package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
	"kanban/internal/repository"
	"kanban/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	connString string
	ctx        context.Context
}

// SetupSuite запускается один раз перед всеми тестами
func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.storage, err = postgres.New(s.ctx, s.connString, postgres.Options{MaxConns: 4, MinConns: 1})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.storage.Migrate(s.ctx))
}

// TearDownSuite очищает после всех тестов
func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицы перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	s.Require().NoError(err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, "TRUNCATE tasks, users")
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) TestHealthCheck() {
	s.NoError(s.storage.HealthCheck(s.ctx))
}

func (s *PostgresTestSuite) TestMigrate_Idempotent() {
	s.NoError(s.storage.Migrate(s.ctx))
}

func (s *PostgresTestSuite) TestTask_CreateAndGet() {
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
	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := tasks.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("Write report", got.Todo)
	s.Equal("quarterly", got.Description)
	s.Equal(task.StatusTodo, got.Status)
	s.Require().NotNil(got.Deadline)
	s.True(deadline.Equal(*got.Deadline))
}

func (s *PostgresTestSuite) TestTask_Update() {
	tasks := s.storage.Tasks()

	created := &task.Task{Todo: "Before", Owner: task.Unassigned, Status: task.StatusTodo}
	s.Require().NoError(tasks.Create(s.ctx, created))

	updated := &task.Task{ID: created.ID, Todo: "After", Owner: "someone", Status: task.StatusDoing}
	s.Require().NoError(tasks.Update(s.ctx, updated))
	s.True(created.CreatedAt.Equal(updated.CreatedAt))

	got, err := tasks.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("After", got.Todo)
	s.Equal(task.StatusDoing, got.Status)
	s.Nil(got.Deadline)
}

func (s *PostgresTestSuite) TestTask_NotFound() {
	tasks := s.storage.Tasks()

	_, err := tasks.GetByID(s.ctx, "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = tasks.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, repository.ErrNotFound)

	err = tasks.Update(s.ctx, &task.Task{ID: "00000000-0000-0000-0000-000000000000", Todo: "x", Owner: "y", Status: task.StatusTodo})
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestTask_DeleteTwice() {
	tasks := s.storage.Tasks()

	created := &task.Task{Todo: "Delete me", Owner: task.Unassigned, Status: task.StatusTodo}
	s.Require().NoError(tasks.Create(s.ctx, created))

	s.NoError(tasks.Delete(s.ctx, created.ID))
	s.ErrorIs(tasks.Delete(s.ctx, created.ID), repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestTask_ListAndDueBefore() {
	tasks := s.storage.Tasks()
	past := time.Now().Add(-time.Hour)

	overdue := &task.Task{Todo: "Overdue", Owner: task.Unassigned, Status: task.StatusDoing, Deadline: &past}
	done := &task.Task{Todo: "Done", Owner: task.Unassigned, Status: task.StatusComplete, Deadline: &past}
	s.Require().NoError(tasks.Create(s.ctx, overdue))
	s.Require().NoError(tasks.Create(s.ctx, done))

	all, err := tasks.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	due, err := tasks.GetTasksDueBefore(s.ctx, time.Now(), 10)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(overdue.ID, due[0].ID)
}

func (s *PostgresTestSuite) TestUser_SortedByName() {
	users := s.storage.Users()

	for _, name := range []string{"carol", "alice", "bob"} {
		s.Require().NoError(users.Create(s.ctx, &user.User{Name: name}))
	}

	list, err := users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("alice", list[0].Name)
	s.Equal("bob", list[1].Name)
	s.Equal("carol", list[2].Name)
}

func (s *PostgresTestSuite) TestUser_UpdateDelete() {
	users := s.storage.Users()

	u := &user.User{Name: "alice"}
	s.Require().NoError(users.Create(s.ctx, u))

	s.Require().NoError(users.Update(s.ctx, &user.User{ID: u.ID, Name: "alicia"}))
	got, err := users.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("alicia", got.Name)

	s.NoError(users.Delete(s.ctx, u.ID))
	s.ErrorIs(users.Delete(s.ctx, u.ID), repository.ErrNotFound)
	s.ErrorIs(users.Update(s.ctx, &user.User{ID: u.ID, Name: "x"}), repository.ErrNotFound)
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в short режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}
