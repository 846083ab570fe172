package models

// View selects which presentation mode of the workspace is active.
type View string

const (
	ViewDashboard       View = "dashboard"
	ViewRegisterStudent View = "registerStudent"
	ViewCreateHackathon View = "createHackathon"
	ViewTeams           View = "viewTeams"
)

// NavViews lists the views reachable from the navigation bar, in display order.
var NavViews = []View{ViewDashboard, ViewRegisterStudent, ViewCreateHackathon}

// Valid reports whether v is one of the four known views.
func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewRegisterStudent, ViewCreateHackathon, ViewTeams:
		return true
	}
	return false
}

// Navigable reports whether v may be selected by user navigation.
// The team view is only entered by generating teams.
func (v View) Navigable() bool {
	return v.Valid() && v != ViewTeams
}

// Label is the nav bar caption.
func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewRegisterStudent:
		return "Register Student"
	case ViewCreateHackathon:
		return "Create Hackathon"
	case ViewTeams:
		return "View Teams"
	}
	return string(v)
}
