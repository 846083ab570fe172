package service

import (
	"github.com/noah-isme/codereg/internal/dto"
	"github.com/noah-isme/codereg/internal/models"
)

// DashboardService projects workspace state into view payloads.
type DashboardService struct{}

// NewDashboardService constructs the projection service.
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// Dashboard builds the hackathon cards in creation order.
func (s *DashboardService) Dashboard(state *models.AppState) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		StudentCount:   len(state.Students),
		HackathonCount: len(state.Hackathons),
		Hackathons:     make([]dto.HackathonCard, 0, len(state.Hackathons)),
	}
	if latest, ok := state.LatestStudent(); ok {
		resp.LatestStudent = &latest
	}
	for i := range state.Hackathons {
		h := &state.Hackathons[i]
		resp.Hackathons = append(resp.Hackathons, dto.HackathonCard{
			ID:              h.ID,
			Name:            h.Name,
			Date:            h.Date,
			DisplayDate:     h.DisplayDate(),
			Description:     h.Description,
			MaxTeams:        h.MaxTeams,
			RegisteredCount: len(h.RegisteredStudents),
			TeamsGenerated:  len(h.Teams) > 0,
			TeamCount:       len(h.Teams),
		})
	}
	return resp
}

// Teams returns the team view of the current hackathon, nil when none is selected.
func (s *DashboardService) Teams(state *models.AppState) *dto.TeamView {
	h, ok := state.CurrentHackathon()
	if !ok {
		return nil
	}
	return &dto.TeamView{HackathonID: h.ID, HackathonName: h.Name, Teams: h.Teams}
}

// State assembles the payload for whichever view is active.
func (s *DashboardService) State(state *models.AppState) *dto.StateResponse {
	resp := &dto.StateResponse{
		ActiveView:   state.ActiveView,
		Notification: state.Notification,
		Nav:          make([]dto.NavItem, 0, len(models.NavViews)),
	}
	for _, v := range models.NavViews {
		resp.Nav = append(resp.Nav, dto.NavItem{View: v, Label: v.Label(), Active: v == state.ActiveView})
	}
	switch state.ActiveView {
	case models.ViewRegisterStudent:
		draft := state.StudentDraft
		resp.StudentDraft = &draft
	case models.ViewCreateHackathon:
		draft := state.HackathonDraft
		resp.HackathonDraft = &draft
	case models.ViewTeams:
		resp.Teams = s.Teams(state)
	default:
		resp.Dashboard = s.Dashboard(state)
	}
	return resp
}
