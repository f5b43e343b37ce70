package models

import (
	"github.com/go-playground/validator/v10"
)

type Semester string

const (
	Semester11 Semester = "1.1"
	Semester12 Semester = "1.2"
	Semester21 Semester = "2.1"
	Semester22 Semester = "2.2"
)

func (s Semester) IsValid() bool {
	switch s {
	case Semester11, Semester12, Semester21, Semester22:
		return true
	default:
		return false
	}
}

type SubmissionStatus string

const (
	StatusOnTime SubmissionStatus = "ontime"
	// StatusLate exists in the data model but no code path produces it yet.
	StatusLate SubmissionStatus = "late"
)

type Submission struct {
	ID               string           `db:"id" json:"id" validate:"required"`
	Student          string           `db:"student" json:"student" validate:"required"`
	Semester         Semester         `db:"semester" json:"semester" validate:"required,oneof=1.1 1.2 2.1 2.2"`
	Week             int              `db:"week" json:"week" validate:"required,min=1,max=10"`
	StudyDescription string           `db:"study_description" json:"study_description" validate:"required"`
	HelpTopics       string           `db:"help_topics" json:"help_topics"`
	RequestPastPaper bool             `db:"request_past_paper" json:"request_past_paper"`
	UploadedFile     string           `db:"uploaded_file" json:"uploaded_file,omitempty"`
	Printed          bool             `db:"printed" json:"printed"`
	Timestamp        int64            `db:"timestamp" json:"timestamp"`
	Status           SubmissionStatus `db:"status" json:"status" validate:"required,oneof=ontime late"`
}

func (s *Submission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
