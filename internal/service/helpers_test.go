package service

import (
	"fmt"

	"github.com/noah-isme/codereg/internal/models"
)

type seqIDs struct {
	n int
}

func (g *seqIDs) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s%d", prefix, g.n)
}

func studentForm(name, roll, email string) models.StudentForm {
	return models.StudentForm{Name: name, RollNumber: roll, Email: email, PhoneNumber: "555-0100"}
}

func hackathonForm(name string) models.HackathonForm {
	return models.HackathonForm{Name: name, Date: "2025-03-07", Description: "weekend build", MaxTeams: 5}
}

func rosterOf(n int) []models.Student {
	out := make([]models.Student, n)
	for i := range out {
		out[i] = models.Student{
			ID:    fmt.Sprintf("S%d", i+1),
			Name:  fmt.Sprintf("Student %d", i+1),
			Email: fmt.Sprintf("s%d@example.com", i+1),
		}
	}
	return out
}
