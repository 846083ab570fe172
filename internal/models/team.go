package models

// TeamMember is the id/name/email projection of a Student kept on a team.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Team groups at most TEAM_SIZE members of one hackathon.
type Team struct {
	ID          string       `json:"team_id"`
	HackathonID string       `json:"hackathon_id"`
	Members     []TeamMember `json:"members"`
}

// MemberOf projects a student onto its team member summary.
func MemberOf(s Student) TeamMember {
	return TeamMember{ID: s.ID, Name: s.Name, Email: s.Email}
}
