package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/geckostudy/geckoden/internal/models"
)

// EntityStore is durable key-value persistence for the three collections.
// Lists preserve insertion order. All operations are durable on return.
type EntityStore interface {
	Close() error
	ApplyMigrations(dir string) error
	Seed(roster []models.StudentProfile) error

	GetStudent(username string) (*models.StudentProfile, error)
	ListStudents() ([]models.StudentProfile, error)
	InsertStudent(student *models.StudentProfile) error
	ReplaceStudent(username string, student *models.StudentProfile) error

	GetSubmission(id string) (*models.Submission, error)
	ListSubmissions(student string) ([]models.Submission, error)
	FindSubmission(student string, semester models.Semester, week int) (*models.Submission, error)
	InsertSubmission(submission *models.Submission) error
	ReplaceSubmission(id string, submission *models.Submission) error

	ListResources(semester models.Semester) ([]models.Resource, error)
	InsertResource(resource *models.Resource) error
}

// BaseStore provides common functionality for different DB implementations.
// Converter rewrites ? placeholders for the dialect; IsDuplicate recognizes
// the driver's unique-constraint violation.
type BaseStore struct {
	DB          *sqlx.DB
	Converter   func(string) string
	IsDuplicate func(error) bool
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

// Seed inserts the bootstrap roster only when the students collection has
// never been populated. Safe to call on every startup.
func (s *BaseStore) Seed(roster []models.StudentProfile) error {
	var count int
	if err := s.DB.Get(&count, "SELECT COUNT(*) FROM students"); err != nil {
		return fmt.Errorf("failed to check students collection: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range roster {
		if err := s.InsertStudent(&roster[i]); err != nil {
			return fmt.Errorf("failed to seed roster: %w", err)
		}
	}
	return nil
}

func (s *BaseStore) GetStudent(username string) (*models.StudentProfile, error) {
	var student models.StudentProfile
	query := s.Converter(`
		SELECT username, name, role, points, badges, check_in_date
		FROM students
		WHERE username = ?
	`)

	err := s.DB.Get(&student, query, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

func (s *BaseStore) ListStudents() ([]models.StudentProfile, error) {
	var students []models.StudentProfile
	err := s.DB.Select(&students, `
		SELECT username, name, role, points, badges, check_in_date
		FROM students
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *BaseStore) InsertStudent(student *models.StudentProfile) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO students (username, name, role, points, badges, check_in_date)
		VALUES (:username, :name, :role, :points, :badges, :check_in_date)
	`, student)
	if err != nil {
		if s.IsDuplicate != nil && s.IsDuplicate(err) {
			return fmt.Errorf("student %q: %w", student.Username, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

func (s *BaseStore) ReplaceStudent(username string, student *models.StudentProfile) error {
	query := s.Converter(`
		UPDATE students
		SET name = ?, role = ?, points = ?, badges = ?, check_in_date = ?
		WHERE username = ?
	`)

	badges, err := student.Badges.Value()
	if err != nil {
		return err
	}

	result, err := s.DB.Exec(query,
		student.Name,
		student.Role,
		student.Points,
		badges,
		student.CheckInDate,
		username,
	)
	if err != nil {
		return fmt.Errorf("failed to replace student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check replace result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %q: %w", username, ErrNotFound)
	}
	return nil
}

func (s *BaseStore) GetSubmission(id string) (*models.Submission, error) {
	var submission models.Submission
	query := s.Converter(`
		SELECT id, student, semester, week, study_description, help_topics,
		       request_past_paper, uploaded_file, printed, timestamp, status
		FROM submissions
		WHERE id = ?
	`)

	err := s.DB.Get(&submission, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &submission, nil
}

// ListSubmissions returns every submission, or only one student's when
// student is non-empty. Insertion order either way.
func (s *BaseStore) ListSubmissions(student string) ([]models.Submission, error) {
	var submissions []models.Submission
	var err error

	if student == "" {
		err = s.DB.Select(&submissions, `
			SELECT id, student, semester, week, study_description, help_topics,
			       request_past_paper, uploaded_file, printed, timestamp, status
			FROM submissions
			ORDER BY seq ASC
		`)
	} else {
		query := s.Converter(`
			SELECT id, student, semester, week, study_description, help_topics,
			       request_past_paper, uploaded_file, printed, timestamp, status
			FROM submissions
			WHERE student = ?
			ORDER BY seq ASC
		`)
		err = s.DB.Select(&submissions, query, student)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *BaseStore) FindSubmission(student string, semester models.Semester, week int) (*models.Submission, error) {
	var submission models.Submission
	query := s.Converter(`
		SELECT id, student, semester, week, study_description, help_topics,
		       request_past_paper, uploaded_file, printed, timestamp, status
		FROM submissions
		WHERE student = ?
		AND semester = ?
		AND week = ?
		ORDER BY seq ASC
		LIMIT 1
	`)

	err := s.DB.Get(&submission, query, student, semester, week)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &submission, nil
}

func (s *BaseStore) InsertSubmission(submission *models.Submission) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO submissions (id, student, semester, week, study_description,
		                         help_topics, request_past_paper, uploaded_file,
		                         printed, timestamp, status)
		VALUES (:id, :student, :semester, :week, :study_description,
		        :help_topics, :request_past_paper, :uploaded_file,
		        :printed, :timestamp, :status)
	`, submission)
	if err != nil {
		if s.IsDuplicate != nil && s.IsDuplicate(err) {
			return fmt.Errorf("submission %q: %w", submission.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *BaseStore) ReplaceSubmission(id string, submission *models.Submission) error {
	query := s.Converter(`
		UPDATE submissions
		SET student = ?, semester = ?, week = ?, study_description = ?,
		    help_topics = ?, request_past_paper = ?, uploaded_file = ?,
		    printed = ?, timestamp = ?, status = ?
		WHERE id = ?
	`)

	result, err := s.DB.Exec(query,
		submission.Student,
		submission.Semester,
		submission.Week,
		submission.StudyDescription,
		submission.HelpTopics,
		submission.RequestPastPaper,
		submission.UploadedFile,
		submission.Printed,
		submission.Timestamp,
		submission.Status,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to replace submission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check replace result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("submission %q: %w", id, ErrNotFound)
	}
	return nil
}

// ListResources returns every resource, or only one semester's when
// semester is non-empty. Insertion order either way.
func (s *BaseStore) ListResources(semester models.Semester) ([]models.Resource, error) {
	var resources []models.Resource
	var err error

	if semester == "" {
		err = s.DB.Select(&resources, `
			SELECT id, type, title, filename, semester, week, uploaded_by, timestamp
			FROM resources
			ORDER BY seq ASC
		`)
	} else {
		query := s.Converter(`
			SELECT id, type, title, filename, semester, week, uploaded_by, timestamp
			FROM resources
			WHERE semester = ?
			ORDER BY seq ASC
		`)
		err = s.DB.Select(&resources, query, semester)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func (s *BaseStore) InsertResource(resource *models.Resource) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO resources (id, type, title, filename, semester, week, uploaded_by, timestamp)
		VALUES (:id, :type, :title, :filename, :semester, :week, :uploaded_by, :timestamp)
	`, resource)
	if err != nil {
		if s.IsDuplicate != nil && s.IsDuplicate(err) {
			return fmt.Errorf("resource %q: %w", resource.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert resource: %w", err)
	}
	return nil
}
