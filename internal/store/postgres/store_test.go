package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/geckostudy/geckoden/internal/models"
	"github.com/geckostudy/geckoden/internal/store"
)

// setupTestDB spins up a disposable Postgres container and applies migrations
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	postgres, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := postgres.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		postgres.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestStudentRoundTrip(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	student := models.StudentProfile{
		Username: "john.doe",
		Name:     "John Doe",
		Role:     models.RoleStudent,
		Points:   10,
		Badges:   models.BadgeList{"tech_brain"},
	}

	t.Run("insert student", func(t *testing.T) {
		err := s.InsertStudent(&student)
		require.NoError(t, err)
	})

	t.Run("get student", func(t *testing.T) {
		got, err := s.GetStudent("john.doe")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, student.Name, got.Name)
		assert.Equal(t, models.BadgeList{"tech_brain"}, got.Badges)
		assert.Nil(t, got.CheckInDate)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := s.InsertStudent(&student)
		assert.ErrorIs(t, err, store.ErrDuplicateKey)
	})

	t.Run("replace missing student", func(t *testing.T) {
		err := s.ReplaceStudent("not.exists", &student)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSubmissionRoundTrip(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	submission := models.Submission{
		ID:               "sub-1",
		Student:          "john.doe",
		Semester:         models.Semester21,
		Week:             7,
		StudyDescription: "Organic chemistry revision",
		Timestamp:        now.Unix(),
		Status:           models.StatusOnTime,
	}

	require.NoError(t, s.InsertSubmission(&submission))

	t.Run("find existing", func(t *testing.T) {
		got, err := s.FindSubmission("john.doe", models.Semester21, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sub-1", got.ID)
	})

	t.Run("find non-existent", func(t *testing.T) {
		got, err := s.FindSubmission("john.doe", models.Semester21, 8)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("replace toggles printed", func(t *testing.T) {
		submission.Printed = true
		require.NoError(t, s.ReplaceSubmission("sub-1", &submission))

		got, err := s.GetSubmission("sub-1")
		require.NoError(t, err)
		assert.True(t, got.Printed)
	})
}
