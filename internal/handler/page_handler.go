package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/dto"
	"github.com/noah-isme/codereg/internal/models"
	"github.com/noah-isme/codereg/internal/service"
	"github.com/noah-isme/codereg/internal/web"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
	"github.com/noah-isme/codereg/pkg/middleware/session"
)

// pageData is the template context for the single workspace page.
type pageData struct {
	*dto.StateResponse
	APIPrefix             string
	NotificationTTLMillis int64
}

// PageHandler serves the server-rendered workspace. Every form posts back and
// is answered with a 303 to "/", where the banner reports the outcome.
type PageHandler struct {
	workspace       workspaceService
	views           *service.DashboardService
	apiPrefix       string
	notificationTTL time.Duration
	logger          *zap.Logger
}

// NewPageHandler constructs PageHandler.
func NewPageHandler(workspace workspaceService, views *service.DashboardService, apiPrefix string, notificationTTL time.Duration, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		workspace:       workspace,
		views:           views,
		apiPrefix:       apiPrefix,
		notificationTTL: notificationTTL,
		logger:          logger,
	}
}

// Index renders the active view.
func (h *PageHandler) Index(c *gin.Context) {
	state, err := h.workspace.Snapshot(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		h.internal(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, web.LayoutTemplate, pageData{
		StateResponse:         h.views.State(state),
		APIPrefix:             h.apiPrefix,
		NotificationTTLMillis: h.notificationTTL.Milliseconds(),
	})
}

// Navigate handles the navigation bar buttons.
func (h *PageHandler) Navigate(c *gin.Context) {
	_, err := h.workspace.Navigate(c.Request.Context(), sessionFromContext(c), models.View(c.Param("view")))
	h.redirect(c, err)
}

// RegisterStudent handles the student form.
func (h *PageHandler) RegisterStudent(c *gin.Context) {
	var form models.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirect(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form"))
		return
	}
	_, _, err := h.workspace.RegisterStudent(c.Request.Context(), sessionFromContext(c), form)
	h.redirect(c, err)
}

// CreateHackathon handles the hackathon form.
func (h *PageHandler) CreateHackathon(c *gin.Context) {
	var form models.HackathonForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirect(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form"))
		return
	}
	_, _, err := h.workspace.CreateHackathon(c.Request.Context(), sessionFromContext(c), form)
	h.redirect(c, err)
}

// RegisterLatestStudent handles the "Register Latest Student" card button.
func (h *PageHandler) RegisterLatestStudent(c *gin.Context) {
	_, _, err := h.workspace.RegisterLatestStudent(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	h.redirect(c, err)
}

// GenerateTeams handles the "Generate Teams" card button.
func (h *PageHandler) GenerateTeams(c *gin.Context) {
	_, _, err := h.workspace.GenerateTeams(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	h.redirect(c, err)
}

// redirect answers a form post. Rejections already left their banner in the
// workspace, so only internal failures change the response.
func (h *PageHandler) redirect(c *gin.Context, err error) {
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status >= http.StatusInternalServerError {
			h.internal(c, err)
			return
		}
		h.logger.Debug("form rejected",
			zap.String("path", c.FullPath()),
			zap.String("session_id", session.Short(sessionFromContext(c))),
			zap.String("code", appErr.Code),
		)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}
