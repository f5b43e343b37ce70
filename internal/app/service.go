package app

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/geckostudy/geckoden/internal/leveling"
	"github.com/geckostudy/geckoden/internal/metrics"
	"github.com/geckostudy/geckoden/internal/models"
	"github.com/geckostudy/geckoden/internal/store"
)

const dateFormat = "2006-01-02"

var (
	// ErrDuplicateSubmission means the (student, semester, week) slot is taken.
	ErrDuplicateSubmission = errors.New("submission already exists for this semester and week")

	// ErrUnknownBadge means the badge id is not in the catalog.
	ErrUnknownBadge = errors.New("unknown badge")

	// ErrInvalidSemester means the semester filter is outside the enumeration.
	ErrInvalidSemester = errors.New("invalid semester")

	// ErrInvalidDate means a check-in date was not a YYYY-MM-DD string.
	ErrInvalidDate = errors.New("invalid date")
)

// Service is the business-rule layer over the entity store. It holds no
// copy of the data between calls; every read goes back to the store. The
// mutex serializes the check-then-act sequences (duplicate-submission check,
// clamp-at-zero) so concurrent callers cannot race past each other.
type Service struct {
	Config *Config
	Store  store.EntityStore
	Auth   *Auth

	mu sync.Mutex
}

// New wires a service around an already constructed store. Auth stays
// disabled; used by tests and the bot.
func New(config *Config, entityStore store.EntityStore) *Service {
	return &Service{
		Config: config,
		Store:  entityStore,
		Auth:   &Auth{},
	}
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	entityStore, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	if err := entityStore.Seed(models.SeedRoster()); err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	return &Service{
		Config: config,
		Store:  entityStore,
		Auth:   auth,
	}, nil
}

// Login resolves a username to an identity. The admin sentinel maps to the
// fixed instructor identity without touching the student collection.
// Credential checks happen (or rather, don't) upstream.
func (s *Service) Login(username string) (*models.StudentProfile, error) {
	if username == models.TeacherUsername {
		return &models.StudentProfile{
			Username: models.TeacherUsername,
			Name:     models.TeacherName,
			Role:     models.RoleTeacher,
			Badges:   models.BadgeList{},
		}, nil
	}

	student, err := s.Store.GetStudent(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("user %q: %w", username, store.ErrNotFound)
	}
	return student, nil
}

func (s *Service) ListSubmissions(student string) ([]models.Submission, error) {
	return s.Store.ListSubmissions(student)
}

func (s *Service) ListResources(semester models.Semester) ([]models.Resource, error) {
	if semester != "" && !semester.IsValid() {
		return nil, fmt.Errorf("semester %q: %w", semester, ErrInvalidSemester)
	}
	return s.Store.ListResources(semester)
}

type SubmitStudyRequest struct {
	Student          string          `json:"student" validate:"required"`
	Semester         models.Semester `json:"semester" validate:"required,oneof=1.1 1.2 2.1 2.2"`
	Week             int             `json:"week" validate:"required,min=1,max=10"`
	StudyDescription string          `json:"study_description" validate:"required"`
	HelpTopics       string          `json:"help_topics"`
	RequestPastPaper bool            `json:"request_past_paper"`
	UploadedFile     string          `json:"uploaded_file"`
}

func (r *SubmitStudyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SubmitStudy stores a new weekly submission and credits the homework award.
// At most one submission per (student, semester, week); a duplicate leaves
// the store untouched. A failed point credit is logged, not rolled back:
// losing a student's submitted work over bookkeeping is the worse outcome.
func (s *Service) SubmitStudy(req SubmitStudyRequest) (*models.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.Store.GetStudent(req.Student)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student %q: %w", req.Student, store.ErrNotFound)
	}

	existing, err := s.Store.FindSubmission(req.Student, req.Semester, req.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing submission: %w", err)
	}
	if existing != nil {
		metrics.DuplicateSubmissionsTotal.Inc()
		return nil, fmt.Errorf("student %q, semester %s, week %d: %w",
			req.Student, req.Semester, req.Week, ErrDuplicateSubmission)
	}

	submission := &models.Submission{
		ID:               uuid.NewString(),
		Student:          req.Student,
		Semester:         req.Semester,
		Week:             req.Week,
		StudyDescription: req.StudyDescription,
		HelpTopics:       req.HelpTopics,
		RequestPastPaper: req.RequestPastPaper,
		UploadedFile:     req.UploadedFile,
		Printed:          false,
		Timestamp:        time.Now().Unix(),
		Status:           models.StatusOnTime,
	}

	if err := s.Store.InsertSubmission(submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(
		string(req.Semester),
		strconv.Itoa(req.Week),
	).Inc()

	if err := s.adjustPointsLocked(req.Student, models.PointsHomework); err != nil {
		logger.Error.Printf(
			"submission %s stored but homework credit failed for %s: %v",
			submission.ID, req.Student, err,
		)
		metrics.PointsCreditFailures.Inc()
	}

	return submission, nil
}

// SetPrinted flips the printed flag on a submission. Idempotent; no effect
// on points.
func (s *Service) SetPrinted(id string, printed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission, err := s.Store.GetSubmission(id)
	if err != nil {
		return fmt.Errorf("failed to look up submission: %w", err)
	}
	if submission == nil {
		return fmt.Errorf("submission %q: %w", id, store.ErrNotFound)
	}

	if submission.Printed == printed {
		return nil
	}

	submission.Printed = printed
	return s.Store.ReplaceSubmission(id, submission)
}

type PublishResourceRequest struct {
	Title      string              `json:"title" validate:"required"`
	Type       models.ResourceType `json:"type" validate:"required,oneof=worksheet past_paper"`
	Semester   models.Semester     `json:"semester" validate:"required,oneof=1.1 1.2 2.1 2.2"`
	Week       int                 `json:"week" validate:"required,min=1,max=10"`
	Filename   string              `json:"filename" validate:"required"`
	UploadedBy string              `json:"uploaded_by" validate:"required"`
}

func (r *PublishResourceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// PublishResource catalogs a worksheet or past paper by filename. No
// uniqueness constraint: the same title or file can be published twice.
func (s *Service) PublishResource(req PublishResourceRequest) (*models.Resource, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resource := &models.Resource{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Title:      req.Title,
		Filename:   req.Filename,
		Semester:   req.Semester,
		Week:       req.Week,
		UploadedBy: req.UploadedBy,
		Timestamp:  time.Now().Unix(),
	}

	if err := s.Store.InsertResource(resource); err != nil {
		return nil, fmt.Errorf("failed to store resource: %w", err)
	}

	metrics.ResourcesPublishedTotal.WithLabelValues(string(req.Type)).Inc()

	return resource, nil
}

// ScheduleCheckIn sets the advisory check-in date, overwriting any prior
// one. Last write wins, no history kept.
func (s *Service) ScheduleCheckIn(username, date string) error {
	if _, err := time.Parse(dateFormat, date); err != nil {
		return fmt.Errorf("check-in date %q, want YYYY-MM-DD: %w", date, ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.Store.GetStudent(username)
	if err != nil {
		return fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return fmt.Errorf("student %q: %w", username, store.ErrNotFound)
	}

	student.CheckInDate = &date
	return s.Store.ReplaceStudent(username, student)
}

// AdjustPoints applies a signed delta to the point ledger, flooring at zero.
func (s *Service) AdjustPoints(username string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustPointsLocked(username, delta)
}

func (s *Service) adjustPointsLocked(username string, delta int) error {
	student, err := s.Store.GetStudent(username)
	if err != nil {
		return fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return fmt.Errorf("student %q: %w", username, store.ErrNotFound)
	}

	newPoints := student.Points + delta
	if newPoints < 0 {
		newPoints = 0
	}
	student.Points = newPoints

	if err := s.Store.ReplaceStudent(username, student); err != nil {
		return err
	}

	direction := "credit"
	if delta < 0 {
		direction = "debit"
	}
	metrics.PointsAdjustmentsTotal.WithLabelValues(direction).Inc()

	return nil
}

// AwardBadge attaches a catalog badge to a student. Awarding is a manual,
// out-of-band instructor action; holding the badge already is a no-op.
func (s *Service) AwardBadge(username, badgeID string) error {
	if _, ok := models.BadgeCatalog[badgeID]; !ok {
		return fmt.Errorf("badge %q: %w", badgeID, ErrUnknownBadge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.Store.GetStudent(username)
	if err != nil {
		return fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return fmt.Errorf("student %q: %w", username, store.ErrNotFound)
	}

	if student.Badges.Contains(badgeID) {
		return nil
	}

	student.Badges = append(student.Badges, badgeID)
	return s.Store.ReplaceStudent(username, student)
}

type LeaderboardEntry struct {
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Points   int            `json:"points"`
	Level    leveling.Level `json:"level"`
	Grade    string         `json:"grade"`
}

// Leaderboard orders students by points descending. The sort is stable, so
// ties keep the store's insertion order and the ranking never flaps between
// calls on unchanged data.
func (s *Service) Leaderboard() ([]LeaderboardEntry, error) {
	students, err := s.Store.ListStudents()
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	sort.SliceStable(students, func(i, j int) bool {
		return students[i].Points > students[j].Points
	})

	entries := make([]LeaderboardEntry, 0, len(students))
	for _, student := range students {
		entries = append(entries, LeaderboardEntry{
			Username: student.Username,
			Name:     student.Name,
			Points:   student.Points,
			Level:    leveling.ForPoints(student.Points),
			Grade:    leveling.Grade(student.Points),
		})
	}
	return entries, nil
}

// RankOf returns the 1-based leaderboard position for a student.
func (s *Service) RankOf(username string) (int, error) {
	entries, err := s.Leaderboard()
	if err != nil {
		return 0, err
	}

	for i, entry := range entries {
		if entry.Username == username {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("student %q: %w", username, store.ErrNotFound)
}

type StudentProgress struct {
	Profile       models.StudentProfile `json:"profile"`
	Level         leveling.Level        `json:"level"`
	Grade         string                `json:"grade"`
	Progress      leveling.Progress     `json:"progress"`
	Rank          int                   `json:"rank"`
	CheckInStatus models.CheckInStatus  `json:"check_in_status"`
}

// Progress assembles the dashboard view for one student: level, grade,
// progress toward the next tier, leaderboard rank and today's check-in
// classification.
func (s *Service) Progress(username string) (*StudentProgress, error) {
	student, err := s.Store.GetStudent(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student %q: %w", username, store.ErrNotFound)
	}

	rank, err := s.RankOf(username)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format(dateFormat)
	return &StudentProgress{
		Profile:       *student,
		Level:         leveling.ForPoints(student.Points),
		Grade:         leveling.Grade(student.Points),
		Progress:      leveling.LevelProgress(student.Points),
		Rank:          rank,
		CheckInStatus: student.CheckInStatusOn(today),
	}, nil
}

func (s *Service) ValidateAuthAndStudent(r *http.Request, student string) error {
	if s.Config == nil || !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.tokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Auth.ValidateToken(r.Context(), student, token)
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	if s.Config == nil {
		return true
	}
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if s.Auth != nil {
		if err := s.Auth.Close(); err != nil {
			errs = append(errs, fmt.Errorf("auth: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
