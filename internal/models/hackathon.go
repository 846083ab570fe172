package models

import (
	"strings"
	"time"
)

// HackathonDateLayout is the calendar date format accepted for hackathons.
const HackathonDateLayout = "2006-01-02"

// Hackathon is an event with a roster of registered students and its
// generated team partition. MaxTeams is recorded but never enforced.
type Hackathon struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Date               string    `json:"date"`
	Description        string    `json:"description"`
	MaxTeams           int       `json:"max_teams"`
	RegisteredStudents []Student `json:"registered_students"`
	Teams              []Team    `json:"teams"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasStudent reports whether the student id already sits in the roster.
func (h *Hackathon) HasStudent(studentID string) bool {
	for _, s := range h.RegisteredStudents {
		if s.ID == studentID {
			return true
		}
	}
	return false
}

// DisplayDate renders the date like "Mon Jan 02 2006", or the raw value when it does not parse.
func (h *Hackathon) DisplayDate() string {
	t, err := time.Parse(HackathonDateLayout, h.Date)
	if err != nil {
		return h.Date
	}
	return t.Format("Mon Jan 02 2006")
}

// HackathonForm holds the hackathon creation form.
type HackathonForm struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Date        string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" form:"description" validate:"required"`
	MaxTeams    int    `json:"max_teams" form:"max_teams" validate:"required,min=1"`
}

// Normalize trims surrounding whitespace from the text fields.
func (f HackathonForm) Normalize() HackathonForm {
	return HackathonForm{
		Name:        strings.TrimSpace(f.Name),
		Date:        strings.TrimSpace(f.Date),
		Description: strings.TrimSpace(f.Description),
		MaxTeams:    f.MaxTeams,
	}
}
