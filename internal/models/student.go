package models

import (
	"strings"
	"time"
)

// Student represents a learner registered in the workspace roster.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RollNumber   string    `json:"roll_number"`
	Course       string    `json:"course"`
	Year         string    `json:"year"`
	Batch        string    `json:"batch"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	RegisteredAt time.Time `json:"registered_at"`
}

// StudentForm holds the student registration form. Course, year and batch may be blank.
type StudentForm struct {
	Name        string `json:"name" form:"name" validate:"required"`
	RollNumber  string `json:"roll_number" form:"roll_number" validate:"required"`
	Course      string `json:"course" form:"course"`
	Year        string `json:"year" form:"year"`
	Batch       string `json:"batch" form:"batch"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (f StudentForm) Normalize() StudentForm {
	return StudentForm{
		Name:        strings.TrimSpace(f.Name),
		RollNumber:  strings.TrimSpace(f.RollNumber),
		Course:      strings.TrimSpace(f.Course),
		Year:        strings.TrimSpace(f.Year),
		Batch:       strings.TrimSpace(f.Batch),
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
	}
}

// StudentFilter narrows the roster listing.
type StudentFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
