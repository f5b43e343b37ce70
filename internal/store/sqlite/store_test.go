// internal/store/sqlite/store_test.go
package sqlite

import (
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geckostudy/geckoden/internal/models"
	"github.com/geckostudy/geckoden/internal/store"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestStudentOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	checkIn := "2024-02-01"
	student := models.StudentProfile{
		Username:    "john.doe",
		Name:        "John Doe",
		Role:        models.RoleStudent,
		Points:      10,
		Badges:      models.BadgeList{"speed_gecko"},
		CheckInDate: &checkIn,
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
		assert.Equal(t, student.Points, got.Points)
		assert.Equal(t, models.BadgeList{"speed_gecko"}, got.Badges)
		require.NotNil(t, got.CheckInDate)
		assert.Equal(t, checkIn, *got.CheckInDate)
	})

	t.Run("get non-existent student", func(t *testing.T) {
		got, err := s.GetStudent("not.exists")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := s.InsertStudent(&models.StudentProfile{
			Username: "john.doe",
			Name:     "Impostor",
			Role:     models.RoleStudent,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrDuplicateKey)
	})

	t.Run("replace student", func(t *testing.T) {
		student.Points = 25
		student.CheckInDate = nil
		err := s.ReplaceStudent("john.doe", &student)
		require.NoError(t, err)

		got, err := s.GetStudent("john.doe")
		require.NoError(t, err)
		assert.Equal(t, 25, got.Points)
		assert.Nil(t, got.CheckInDate)
	})

	t.Run("replace missing student", func(t *testing.T) {
		err := s.ReplaceStudent("not.exists", &student)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListStudentsPreservesInsertionOrder(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	usernames := []string{"zoe", "adam", "mike"}
	for _, u := range usernames {
		err := s.InsertStudent(&models.StudentProfile{
			Username: u,
			Name:     u,
			Role:     models.RoleStudent,
		})
		require.NoError(t, err)
	}

	students, err := s.ListStudents()
	require.NoError(t, err)
	require.Len(t, students, 3)
	for i, u := range usernames {
		assert.Equal(t, u, students[i].Username)
	}
}

func TestSeed(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	roster := models.SeedRoster()

	t.Run("seeds empty collection", func(t *testing.T) {
		err := s.Seed(roster)
		require.NoError(t, err)

		students, err := s.ListStudents()
		require.NoError(t, err)
		assert.Len(t, students, len(roster))
	})

	t.Run("second seed is a no-op", func(t *testing.T) {
		err := s.Seed(roster)
		require.NoError(t, err)

		students, err := s.ListStudents()
		require.NoError(t, err)
		assert.Len(t, students, len(roster))
	})
}

func TestSubmissionOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	submission := models.Submission{
		ID:               "sub-1",
		Student:          "john.doe",
		Semester:         models.Semester11,
		Week:             3,
		StudyDescription: "Reviewed trig identities",
		RequestPastPaper: true,
		Timestamp:        now.Unix(),
		Status:           models.StatusOnTime,
	}

	t.Run("insert submission", func(t *testing.T) {
		err := s.InsertSubmission(&submission)
		require.NoError(t, err)
	})

	t.Run("get submission", func(t *testing.T) {
		got, err := s.GetSubmission("sub-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, submission.StudyDescription, got.StudyDescription)
		assert.Equal(t, models.StatusOnTime, got.Status)
		assert.False(t, got.Printed)
	})

	t.Run("find by student semester week", func(t *testing.T) {
		got, err := s.FindSubmission("john.doe", models.Semester11, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sub-1", got.ID)
	})

	t.Run("find misses on different week", func(t *testing.T) {
		got, err := s.FindSubmission("john.doe", models.Semester11, 4)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		dup := submission
		dup.Week = 9
		err := s.InsertSubmission(&dup)
		assert.ErrorIs(t, err, store.ErrDuplicateKey)
	})

	t.Run("replace toggles printed", func(t *testing.T) {
		submission.Printed = true
		err := s.ReplaceSubmission("sub-1", &submission)
		require.NoError(t, err)

		got, err := s.GetSubmission("sub-1")
		require.NoError(t, err)
		assert.True(t, got.Printed)
	})

	t.Run("replace missing submission", func(t *testing.T) {
		err := s.ReplaceSubmission("nope", &submission)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list filters by student", func(t *testing.T) {
		other := models.Submission{
			ID:               "sub-2",
			Student:          "jane.roe",
			Semester:         models.Semester11,
			Week:             3,
			StudyDescription: "Essay outline",
			Timestamp:        now.Unix(),
			Status:           models.StatusOnTime,
		}
		require.NoError(t, s.InsertSubmission(&other))

		all, err := s.ListSubmissions("")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		mine, err := s.ListSubmissions("jane.roe")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "sub-2", mine[0].ID)
	})
}

func TestResourceOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	resources := []models.Resource{
		{ID: "r1", Type: models.ResourceWorksheet, Title: "Week 1 worksheet", Filename: "w1.pdf", Semester: models.Semester11, Week: 1, UploadedBy: "admin", Timestamp: now.Unix()},
		{ID: "r2", Type: models.ResourcePastPaper, Title: "2023 past paper", Filename: "pp.pdf", Semester: models.Semester12, Week: 5, UploadedBy: "admin", Timestamp: now.Unix()},
		{ID: "r3", Type: models.ResourceWorksheet, Title: "Week 2 worksheet", Filename: "w2.pdf", Semester: models.Semester11, Week: 2, UploadedBy: "admin", Timestamp: now.Unix()},
	}

	for i := range resources {
		require.NoError(t, s.InsertResource(&resources[i]))
	}

	t.Run("list all keeps insertion order", func(t *testing.T) {
		all, err := s.ListResources("")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "r1", all[0].ID)
		assert.Equal(t, "r2", all[1].ID)
		assert.Equal(t, "r3", all[2].ID)
	})

	t.Run("filter by semester keeps insertion order", func(t *testing.T) {
		got, err := s.ListResources(models.Semester11)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r1", got[0].ID)
		assert.Equal(t, "r3", got[1].ID)
	})

	t.Run("duplicate titles are permitted", func(t *testing.T) {
		dup := models.Resource{ID: "r4", Type: models.ResourceWorksheet, Title: "Week 1 worksheet", Filename: "w1.pdf", Semester: models.Semester11, Week: 1, UploadedBy: "admin", Timestamp: now.Unix()}
		require.NoError(t, s.InsertResource(&dup))
	})
}
