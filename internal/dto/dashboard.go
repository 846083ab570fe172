package dto

import "github.com/noah-isme/codereg/internal/models"

// DashboardResponse is the dashboard view: one card per hackathon plus roster totals.
type DashboardResponse struct {
	StudentCount   int             `json:"studentCount"`
	HackathonCount int             `json:"hackathonCount"`
	LatestStudent  *models.Student `json:"latestStudent,omitempty"`
	Hackathons     []HackathonCard `json:"hackathons"`
}

// HackathonCard summarises one hackathon on the dashboard.
type HackathonCard struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Date            string `json:"date"`
	DisplayDate     string `json:"displayDate"`
	Description     string `json:"description"`
	MaxTeams        int    `json:"maxTeams"`
	RegisteredCount int    `json:"registeredCount"`
	TeamsGenerated  bool   `json:"teamsGenerated"`
	TeamCount       int    `json:"teamCount"`
}

// TeamView lists the generated teams of the current hackathon.
type TeamView struct {
	HackathonID   string        `json:"hackathonId"`
	HackathonName string        `json:"hackathonName"`
	Teams         []models.Team `json:"teams"`
}
