package dto

import "github.com/noah-isme/codereg/internal/models"

// NavItem is one entry of the navigation bar.
type NavItem struct {
	View   models.View `json:"view"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

// StateResponse is everything a client needs to render the active view.
type StateResponse struct {
	ActiveView     models.View           `json:"activeView"`
	Nav            []NavItem             `json:"nav"`
	Notification   *models.Notification  `json:"notification,omitempty"`
	Dashboard      *DashboardResponse    `json:"dashboard,omitempty"`
	StudentDraft   *models.StudentForm   `json:"studentDraft,omitempty"`
	HackathonDraft *models.HackathonForm `json:"hackathonDraft,omitempty"`
	Teams          *TeamView             `json:"teams,omitempty"`
}

// NavigateRequest selects the active view.
type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

// DismissResponse reports whether a dismiss request cleared the banner.
type DismissResponse struct {
	Cleared bool `json:"cleared"`
}
