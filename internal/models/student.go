package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// BadgeList is stored as a JSON array in a TEXT column.
type BadgeList []string

func (b BadgeList) Value() (driver.Value, error) {
	if b == nil {
		b = BadgeList{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode badges: %w", err)
	}
	return string(data), nil
}

func (b *BadgeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), b)
	case []byte:
		return json.Unmarshal(v, b)
	case nil:
		*b = BadgeList{}
		return nil
	default:
		return fmt.Errorf("cannot scan badges from %T", src)
	}
}

func (b BadgeList) Contains(id string) bool {
	for _, badge := range b {
		if badge == id {
			return true
		}
	}
	return false
}

type StudentProfile struct {
	Username    string    `db:"username" json:"username" validate:"required"`
	Name        string    `db:"name" json:"name" validate:"required"`
	Role        Role      `db:"role" json:"role" validate:"required,oneof=STUDENT TEACHER"`
	Points      int       `db:"points" json:"points" validate:"min=0"`
	Badges      BadgeList `db:"badges" json:"badges"`
	CheckInDate *string   `db:"check_in_date" json:"check_in_date,omitempty"`
}

func (s *StudentProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// CheckInStatus classifies a scheduled check-in relative to a given day.
type CheckInStatus string

const (
	CheckInToday  CheckInStatus = "SCHEDULED_TODAY"
	CheckInFuture CheckInStatus = "SCHEDULED_FUTURE"
	CheckInNone   CheckInStatus = "NONE"
)

// CheckInStatusOn compares ISO dates lexicographically, which matches
// chronological order for YYYY-MM-DD. Past dates stay on the profile and
// classify as NONE; there is no archival step.
func (s *StudentProfile) CheckInStatusOn(today string) CheckInStatus {
	if s.CheckInDate == nil || *s.CheckInDate == "" {
		return CheckInNone
	}
	switch {
	case *s.CheckInDate == today:
		return CheckInToday
	case *s.CheckInDate > today:
		return CheckInFuture
	default:
		return CheckInNone
	}
}
