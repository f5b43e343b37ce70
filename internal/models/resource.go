package models

import (
	"github.com/go-playground/validator/v10"
)

type ResourceType string

const (
	ResourceWorksheet ResourceType = "worksheet"
	ResourcePastPaper ResourceType = "past_paper"
)

// Resource records an uploaded file by name only. The bytes never pass
// through this system.
type Resource struct {
	ID         string       `db:"id" json:"id" validate:"required"`
	Type       ResourceType `db:"type" json:"type" validate:"required,oneof=worksheet past_paper"`
	Title      string       `db:"title" json:"title" validate:"required"`
	Filename   string       `db:"filename" json:"filename" validate:"required"`
	Semester   Semester     `db:"semester" json:"semester" validate:"required,oneof=1.1 1.2 2.1 2.2"`
	Week       int          `db:"week" json:"week" validate:"required,min=1,max=10"`
	UploadedBy string       `db:"uploaded_by" json:"uploaded_by" validate:"required"`
	Timestamp  int64        `db:"timestamp" json:"timestamp"`
}

func (r *Resource) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
