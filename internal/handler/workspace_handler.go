package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/codereg/internal/dto"
	"github.com/noah-isme/codereg/internal/models"
	"github.com/noah-isme/codereg/internal/service"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
	"github.com/noah-isme/codereg/pkg/response"
)

type workspaceService interface {
	Snapshot(ctx context.Context, sessionID string) (*models.AppState, error)
	RegisterStudent(ctx context.Context, sessionID string, form models.StudentForm) (*models.Student, *models.Notification, error)
	CreateHackathon(ctx context.Context, sessionID string, form models.HackathonForm) (*models.Hackathon, *models.Notification, error)
	RegisterLatestStudent(ctx context.Context, sessionID, hackathonID string) (*service.RegistrationResult, *models.Notification, error)
	GenerateTeams(ctx context.Context, sessionID, hackathonID string) (*models.Hackathon, *models.Notification, error)
	Navigate(ctx context.Context, sessionID string, view models.View) (*models.AppState, error)
	DismissNotification(ctx context.Context, sessionID string, token uint64) (bool, error)
	ListStudents(ctx context.Context, sessionID string, filter models.StudentFilter) ([]models.Student, *models.Pagination, error)
	ListHackathons(ctx context.Context, sessionID string) ([]models.Hackathon, error)
	GetHackathon(ctx context.Context, sessionID, hackathonID string) (*models.Hackathon, error)
}

// WorkspaceHandler exposes the workspace JSON API.
type WorkspaceHandler struct {
	workspace workspaceService
	views     *service.DashboardService
	exports   *service.ExportService
}

// NewWorkspaceHandler constructs WorkspaceHandler.
func NewWorkspaceHandler(workspace workspaceService, views *service.DashboardService, exports *service.ExportService) *WorkspaceHandler {
	return &WorkspaceHandler{workspace: workspace, views: views, exports: exports}
}

// State godoc
// @Summary Current workspace state
// @Description Active view, navigation, banner and the payload of the active view.
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state [get]
func (h *WorkspaceHandler) State(c *gin.Context) {
	state, err := h.workspace.Snapshot(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.views.State(state), nil)
}

// Dashboard godoc
// @Summary Dashboard cards
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *WorkspaceHandler) Dashboard(c *gin.Context) {
	state, err := h.workspace.Snapshot(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.views.Dashboard(state), nil)
}

// Navigate godoc
// @Summary Switch the active view
// @Tags Workspace
// @Accept json
// @Produce json
// @Param payload body dto.NavigateRequest true "Target view"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /view [put]
func (h *WorkspaceHandler) Navigate(c *gin.Context) {
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	state, err := h.workspace.Navigate(c.Request.Context(), sessionFromContext(c), models.View(req.View))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.views.State(state), nil)
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name, email or roll number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *WorkspaceHandler) ListStudents(c *gin.Context) {
	filter := models.StudentFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "limit", 20),
	}
	students, pagination, err := h.workspace.ListStudents(c.Request.Context(), sessionFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// RegisterStudent godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.StudentForm true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *WorkspaceHandler) RegisterStudent(c *gin.Context) {
	var form models.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, notice, err := h.workspace.RegisterStudent(c.Request.Context(), sessionFromContext(c), form)
	if err != nil {
		response.ErrorWithMeta(c, err, response.Meta(notice))
		return
	}
	response.Created(c, student, response.Meta(notice))
}

// ListHackathons godoc
// @Summary List hackathons
// @Tags Hackathons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hackathons [get]
func (h *WorkspaceHandler) ListHackathons(c *gin.Context) {
	hackathons, err := h.workspace.ListHackathons(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hackathons, nil)
}

// CreateHackathon godoc
// @Summary Create hackathon
// @Tags Hackathons
// @Accept json
// @Produce json
// @Param payload body models.HackathonForm true "Hackathon payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /hackathons [post]
func (h *WorkspaceHandler) CreateHackathon(c *gin.Context) {
	var form models.HackathonForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	hackathon, notice, err := h.workspace.CreateHackathon(c.Request.Context(), sessionFromContext(c), form)
	if err != nil {
		response.ErrorWithMeta(c, err, response.Meta(notice))
		return
	}
	response.Created(c, hackathon, response.Meta(notice))
}

// GetHackathon godoc
// @Summary Get hackathon detail
// @Tags Hackathons
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /hackathons/{id} [get]
func (h *WorkspaceHandler) GetHackathon(c *gin.Context) {
	hackathon, err := h.workspace.GetHackathon(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hackathon, nil)
}

// RegisterLatestStudent godoc
// @Summary Register the latest student for a hackathon
// @Description Enrols the most recently registered student. Repeating the call is a no-op reported with 200.
// @Tags Hackathons
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /hackathons/{id}/registrations [post]
func (h *WorkspaceHandler) RegisterLatestStudent(c *gin.Context) {
	result, notice, err := h.workspace.RegisterLatestStudent(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.ErrorWithMeta(c, err, response.Meta(notice))
		return
	}
	status := http.StatusCreated
	if result.AlreadyRegistered {
		status = http.StatusOK
	}
	response.JSON(c, status, result, nil, response.Meta(notice))
}

// GenerateTeams godoc
// @Summary Generate teams
// @Description Shuffles the registered students and replaces the hackathon's teams.
// @Tags Teams
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /hackathons/{id}/teams [post]
func (h *WorkspaceHandler) GenerateTeams(c *gin.Context) {
	hackathon, notice, err := h.workspace.GenerateTeams(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.ErrorWithMeta(c, err, response.Meta(notice))
		return
	}
	response.JSON(c, http.StatusOK, teamView(hackathon), nil, response.Meta(notice))
}

// Teams godoc
// @Summary Current teams of a hackathon
// @Tags Teams
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /hackathons/{id}/teams [get]
func (h *WorkspaceHandler) Teams(c *gin.Context) {
	hackathon, err := h.workspace.GetHackathon(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teamView(hackathon), nil)
}

// ExportTeams godoc
// @Summary Download the team roster
// @Tags Teams
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Hackathon ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /hackathons/{id}/teams/export [get]
func (h *WorkspaceHandler) ExportTeams(c *gin.Context) {
	hackathon, err := h.workspace.GetHackathon(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.ExportTeams(hackathon, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Notification godoc
// @Summary Current banner
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notification [get]
func (h *WorkspaceHandler) Notification(c *gin.Context) {
	state, err := h.workspace.Snapshot(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if state.Notification == nil {
		response.JSON(c, http.StatusOK, nil, nil)
		return
	}
	response.JSON(c, http.StatusOK, state.Notification, nil)
}

// DismissNotification godoc
// @Summary Dismiss the banner
// @Description Clears the banner only while it still carries the given token.
// @Tags Workspace
// @Produce json
// @Param token path int true "Notification token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notification/{token} [delete]
func (h *WorkspaceHandler) DismissNotification(c *gin.Context) {
	token, err := strconv.ParseUint(c.Param("token"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid notification token"))
		return
	}
	cleared, err := h.workspace.DismissNotification(c.Request.Context(), sessionFromContext(c), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DismissResponse{Cleared: cleared}, nil)
}

func teamView(h *models.Hackathon) *dto.TeamView {
	return &dto.TeamView{HackathonID: h.ID, HackathonName: h.Name, Teams: h.Teams}
}
