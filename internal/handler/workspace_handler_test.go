package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/codereg/internal/dto"
	"github.com/noah-isme/codereg/internal/models"
)

func createHackathon(t *testing.T, r http.Handler, sessionID string) models.Hackathon {
	t.Helper()
	rec := performRequest(r, http.MethodPost, apiPrefix+"/hackathons", sessionID, hackathonPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var h models.Hackathon
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &h))
	return h
}

func enrolStudents(t *testing.T, r http.Handler, sessionID, hackathonID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		rec := performRequest(r, http.MethodPost, apiPrefix+"/students", sessionID, studentPayload(i))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		rec = performRequest(r, http.MethodPost, apiPrefix+"/hackathons/"+hackathonID+"/registrations", sessionID, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestAPIRegisterStudent(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := performRequest(r, http.MethodPost, apiPrefix+"/students", sessionA, studentPayload(0))
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Meta.Notification)
	assert.Equal(t, models.NotificationSuccess, env.Meta.Notification.Kind)
	assert.Equal(t, `Student "Student A" registered successfully!`, env.Meta.Notification.Message)

	var student models.Student
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.True(t, strings.HasPrefix(student.ID, "S"))
	assert.Equal(t, "R-A", student.RollNumber)

	dup := studentPayload(1)
	dup.RollNumber = "R-A"
	rec = performRequest(r, http.MethodPost, apiPrefix+"/students", sessionA, dup)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env = decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	require.NotNil(t, env.Meta.Notification)
	assert.Equal(t, models.NotificationError, env.Meta.Notification.Kind)
	assert.Equal(t, "Error: Student with this email or roll number already exists.", env.Meta.Notification.Message)
}

func TestAPIRegisterStudentValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := performRequest(r, http.MethodPost, apiPrefix+"/students", sessionA, models.StudentForm{Name: "Ada"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "missing roll_number")

	rec = performRequest(r, http.MethodGet, apiPrefix+"/state", sessionA, nil)
	var state dto.StateResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &state))
	assert.Equal(t, models.ViewDashboard, state.ActiveView)
	require.NotNil(t, state.Dashboard)
	assert.Zero(t, state.Dashboard.StudentCount)
}

func TestAPIMalformedPayload(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := performRequest(r, http.MethodPost, apiPrefix+"/hackathons", sessionA, map[string]string{"max_teams": "many"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, decode(t, rec).Meta.Notification)
}

func TestAPIRegistrationStatusCodes(t *testing.T) {
	r := newTestRouter(t, nil)
	h := createHackathon(t, r, sessionA)
	path := apiPrefix + "/hackathons/" + h.ID + "/registrations"

	rec := performRequest(r, http.MethodPost, path, sessionA, nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, models.NotificationWarning, decode(t, rec).Meta.Notification.Kind)

	enrolStudents(t, r, sessionA, h.ID, 1)

	rec = performRequest(r, http.MethodPost, path, sessionA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, models.NotificationInfo, env.Meta.Notification.Kind)
	assert.Contains(t, string(env.Data), `"alreadyRegistered":true`)

	rec = performRequest(r, http.MethodPost, apiPrefix+"/hackathons/H0/registrations", sessionA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Hackathon not found.", decode(t, rec).Error.Message)
}

func TestAPIGenerateTeams(t *testing.T) {
	r := newTestRouter(t, nil)
	h := createHackathon(t, r, sessionA)

	rec := performRequest(r, http.MethodPost, apiPrefix+"/hackathons/"+h.ID+"/teams", sessionA, nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, "No registered students to form teams.", decode(t, rec).Meta.Notification.Message)

	enrolStudents(t, r, sessionA, h.ID, 5)

	rec = performRequest(r, http.MethodPost, apiPrefix+"/hackathons/"+h.ID+"/teams", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, `Teams generated for "Spring Hack"!`, env.Meta.Notification.Message)
	var view dto.TeamView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Teams, 2)
	assert.Len(t, view.Teams[0].Members, 4)
	assert.Len(t, view.Teams[1].Members, 1)
	assert.Equal(t, "T"+h.ID[1:]+"-1", view.Teams[0].ID)

	rec = performRequest(r, http.MethodGet, apiPrefix+"/state", sessionA, nil)
	var state dto.StateResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &state))
	assert.Equal(t, models.ViewTeams, state.ActiveView)
	require.NotNil(t, state.Teams)
	assert.Equal(t, h.ID, state.Teams.HackathonID)

	rec = performRequest(r, http.MethodGet, apiPrefix+"/hackathons/"+h.ID+"/teams", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var again dto.TeamView
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &again))
	assert.Equal(t, view.Teams, again.Teams)
}

func TestAPIExportTeams(t *testing.T) {
	r := newTestRouter(t, nil)
	h := createHackathon(t, r, sessionA)
	exportPath := apiPrefix + "/hackathons/" + h.ID + "/teams/export"

	rec := performRequest(r, http.MethodGet, exportPath, sessionA, nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	enrolStudents(t, r, sessionA, h.ID, 3)
	rec = performRequest(r, http.MethodPost, apiPrefix+"/hackathons/"+h.ID+"/teams", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodGet, exportPath, sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), fmt.Sprintf("teams-%s.csv", h.ID))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "team_id,member_id,name,email\n"))

	rec = performRequest(r, http.MethodGet, exportPath+"?format=pdf", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = performRequest(r, http.MethodGet, exportPath+"?format=docx", sessionA, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPINavigate(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := performRequest(r, http.MethodPut, apiPrefix+"/view", sessionA, dto.NavigateRequest{View: "createHackathon"})
	require.Equal(t, http.StatusOK, rec.Code)
	var state dto.StateResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &state))
	assert.Equal(t, models.ViewCreateHackathon, state.ActiveView)
	require.NotNil(t, state.HackathonDraft)

	rec = performRequest(r, http.MethodPut, apiPrefix+"/view", sessionA, dto.NavigateRequest{View: "viewTeams"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodPut, apiPrefix+"/view", sessionA, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPINotificationDismiss(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := performRequest(r, http.MethodPost, apiPrefix+"/students", sessionA, studentPayload(0))
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decode(t, rec).Meta.Notification.Token

	rec = performRequest(r, http.MethodGet, apiPrefix+"/notification", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current models.Notification
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &current))
	assert.Equal(t, token, current.Token)

	rec = performRequest(r, http.MethodDelete, apiPrefix+"/notification/abc", sessionA, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodDelete, fmt.Sprintf("%s/notification/%d", apiPrefix, token+1), sessionA, nil)
	assert.JSONEq(t, `{"cleared":false}`, string(decode(t, rec).Data))

	rec = performRequest(r, http.MethodDelete, fmt.Sprintf("%s/notification/%d", apiPrefix, token), sessionA, nil)
	assert.JSONEq(t, `{"cleared":true}`, string(decode(t, rec).Data))

	rec = performRequest(r, http.MethodGet, apiPrefix+"/notification", sessionA, nil)
	assert.Empty(t, decode(t, rec).Data)
}

func TestAPISessionsAreIsolated(t *testing.T) {
	r := newTestRouter(t, nil)
	createHackathon(t, r, sessionA)

	rec := performRequest(r, http.MethodGet, apiPrefix+"/hackathons", sessionB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))

	rec = performRequest(r, http.MethodGet, apiPrefix+"/dashboard", sessionA, nil)
	var dashboard dto.DashboardResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &dashboard))
	assert.Equal(t, 1, dashboard.HackathonCount)
}

func TestAPIListStudentsPaginates(t *testing.T) {
	r := newTestRouter(t, nil)
	for i := 0; i < 3; i++ {
		rec := performRequest(r, http.MethodPost, apiPrefix+"/students", sessionA, studentPayload(i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := performRequest(r, http.MethodGet, apiPrefix+"/students?page=2&limit=2", sessionA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data       []models.Student  `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Student C", body.Data[0].Name)
	assert.Equal(t, 3, body.Pagination.TotalCount)

	rec = performRequest(r, http.MethodGet, apiPrefix+"/hackathons/H1", sessionA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
