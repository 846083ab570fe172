package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/codereg/internal/models"
	"github.com/noah-isme/codereg/internal/repository"
	"github.com/noah-isme/codereg/internal/service"
	"github.com/noah-isme/codereg/internal/web"
	"github.com/noah-isme/codereg/pkg/middleware/session"
)

const (
	sessionA  = "11111111-1111-4111-8111-111111111111"
	sessionB  = "22222222-2222-4222-8222-222222222222"
	apiPrefix = "/api/v1"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		Notification *models.Notification `json:"notification"`
	} `json:"meta"`
}

func newTestRouter(t *testing.T, workspace workspaceService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if workspace == nil {
		workspace = service.NewWorkspaceService(
			repository.NewMemoryStateRepository(),
			nil, nil, nil,
			service.NewMetricsService(),
			service.WorkspaceConfig{},
			nil,
		)
	}
	views := service.NewDashboardService()

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(session.Middleware(session.Options{}))
	RegisterRoutes(r, Handlers{
		Pages:     NewPageHandler(workspace, views, apiPrefix, 0, nil),
		Workspace: NewWorkspaceHandler(workspace, views, service.NewExportService(nil, nil, nil)),
		Metrics:   NewMetricsHandler(service.NewMetricsService(), nil),
	}, apiPrefix)
	return r
}

func performRequest(r http.Handler, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(session.HeaderKey, sessionID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(r http.Handler, path, sessionID string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(session.HeaderKey, sessionID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func jsonData(body []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

func studentPayload(i int) models.StudentForm {
	return models.StudentForm{
		Name:        "Student " + string(rune('A'+i)),
		RollNumber:  "R-" + string(rune('A'+i)),
		Email:       "student" + string(rune('a'+i)) + "@example.com",
		PhoneNumber: "555-0100",
	}
}

func hackathonPayload() models.HackathonForm {
	return models.HackathonForm{Name: "Spring Hack", Date: "2025-03-07", Description: "weekend build", MaxTeams: 4}
}
