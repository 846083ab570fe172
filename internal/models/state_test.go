package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *AppState {
	st := NewAppState()
	st.Students = []Student{{ID: "S1", Name: "Ada", Email: "ada@example.com", RollNumber: "R1"}}
	st.Hackathons = []Hackathon{{
		ID:                 "H1",
		Name:               "Hack",
		RegisteredStudents: []Student{{ID: "S1", Name: "Ada"}},
		Teams:              []Team{{ID: "T1-1", HackathonID: "H1", Members: []TeamMember{{ID: "S1"}}}},
	}}
	st.Notification = &Notification{Token: 1, Message: "hi"}
	return st
}

func TestAppStateCloneIsDeep(t *testing.T) {
	original := sampleState()
	clone := original.Clone()

	clone.Students[0].Name = "Changed"
	clone.Hackathons[0].RegisteredStudents[0].Name = "Changed"
	clone.Hackathons[0].Teams[0].Members[0].ID = "S9"
	clone.Hackathons[0].Name = "Changed"
	clone.Notification.Message = "changed"
	clone.Students = append(clone.Students, Student{ID: "S2"})

	assert.Equal(t, "Ada", original.Students[0].Name)
	assert.Equal(t, "Ada", original.Hackathons[0].RegisteredStudents[0].Name)
	assert.Equal(t, "S1", original.Hackathons[0].Teams[0].Members[0].ID)
	assert.Equal(t, "Hack", original.Hackathons[0].Name)
	assert.Equal(t, "hi", original.Notification.Message)
	assert.Len(t, original.Students, 1)
}

func TestAppStateLookups(t *testing.T) {
	st := sampleState()

	latest, ok := st.LatestStudent()
	require.True(t, ok)
	assert.Equal(t, "S1", latest.ID)

	assert.True(t, st.HasStudentWith("ada@example.com", "other"))
	assert.True(t, st.HasStudentWith("other@example.com", "R1"))
	assert.False(t, st.HasStudentWith("other@example.com", "R2"))

	h, ok := st.FindHackathon("H1")
	require.True(t, ok)
	assert.True(t, h.HasStudent("S1"))
	assert.False(t, h.HasStudent("S2"))
	assert.Equal(t, -1, st.HackathonIndex("missing"))

	_, ok = st.CurrentHackathon()
	assert.False(t, ok)
	st.CurrentHackathonID = "H1"
	_, ok = st.CurrentHackathon()
	assert.True(t, ok)

	_, ok = NewAppState().LatestStudent()
	assert.False(t, ok)
}

func TestViewNavigation(t *testing.T) {
	assert.True(t, ViewDashboard.Navigable())
	assert.True(t, ViewRegisterStudent.Navigable())
	assert.True(t, ViewCreateHackathon.Navigable())
	assert.False(t, ViewTeams.Navigable())
	assert.True(t, ViewTeams.Valid())
	assert.False(t, View("settings").Valid())
	assert.Equal(t, "Register Student", ViewRegisterStudent.Label())
}

func TestHackathonDisplayDate(t *testing.T) {
	h := Hackathon{Date: "2025-03-07"}
	assert.Equal(t, "Fri Mar 07 2025", h.DisplayDate())

	h.Date = "soon"
	assert.Equal(t, "soon", h.DisplayDate())
}
