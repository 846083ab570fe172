package models

import "time"

// AppState is everything one workspace owns: the roster, the hackathons, the
// active view, the form drafts, and the notification banner.
type AppState struct {
	Students           []Student     `json:"students"`
	Hackathons         []Hackathon   `json:"hackathons"`
	ActiveView         View          `json:"active_view"`
	CurrentHackathonID string        `json:"current_hackathon_id,omitempty"`
	StudentDraft       StudentForm   `json:"student_draft"`
	HackathonDraft     HackathonForm `json:"hackathon_draft"`
	Notification       *Notification `json:"notification,omitempty"`
	NotificationSeq    uint64        `json:"notification_seq"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// NewAppState returns an empty workspace on the dashboard.
func NewAppState() *AppState {
	return &AppState{
		Students:   []Student{},
		Hackathons: []Hackathon{},
		ActiveView: ViewDashboard,
	}
}

// Clone deep-copies the state so callers can mutate it freely.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := *s
	out.Students = append([]Student{}, s.Students...)
	out.Hackathons = make([]Hackathon, len(s.Hackathons))
	for i, h := range s.Hackathons {
		out.Hackathons[i] = cloneHackathon(h)
	}
	if s.Notification != nil {
		n := *s.Notification
		out.Notification = &n
	}
	return &out
}

func cloneHackathon(h Hackathon) Hackathon {
	out := h
	out.RegisteredStudents = append([]Student{}, h.RegisteredStudents...)
	out.Teams = make([]Team, len(h.Teams))
	for i, t := range h.Teams {
		out.Teams[i] = Team{
			ID:          t.ID,
			HackathonID: t.HackathonID,
			Members:     append([]TeamMember{}, t.Members...),
		}
	}
	return out
}

// LatestStudent returns the most recently registered student.
func (s *AppState) LatestStudent() (Student, bool) {
	if len(s.Students) == 0 {
		return Student{}, false
	}
	return s.Students[len(s.Students)-1], true
}

// HasStudentWith reports whether any student already uses the email or roll number.
func (s *AppState) HasStudentWith(email, rollNumber string) bool {
	for _, st := range s.Students {
		if st.Email == email || st.RollNumber == rollNumber {
			return true
		}
	}
	return false
}

// HackathonIndex returns the slice index of the hackathon or -1.
func (s *AppState) HackathonIndex(id string) int {
	for i := range s.Hackathons {
		if s.Hackathons[i].ID == id {
			return i
		}
	}
	return -1
}

// FindHackathon returns a pointer into the state for the hackathon id.
func (s *AppState) FindHackathon(id string) (*Hackathon, bool) {
	idx := s.HackathonIndex(id)
	if idx < 0 {
		return nil, false
	}
	return &s.Hackathons[idx], true
}

// CurrentHackathon is the hackathon shown on the team view, if any.
func (s *AppState) CurrentHackathon() (*Hackathon, bool) {
	if s.CurrentHackathonID == "" {
		return nil, false
	}
	return s.FindHackathon(s.CurrentHackathonID)
}
