package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Pages     *PageHandler
	Workspace *WorkspaceHandler
	Metrics   *MetricsHandler
}

// RegisterRoutes mounts the HTML workspace, the JSON API under apiPrefix and
// the operational endpoints.
func RegisterRoutes(r gin.IRouter, h Handlers, apiPrefix string) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	if h.Pages != nil {
		r.GET("/", h.Pages.Index)
		r.POST("/nav/:view", h.Pages.Navigate)
		r.POST("/students", h.Pages.RegisterStudent)
		r.POST("/hackathons", h.Pages.CreateHackathon)
		r.POST("/hackathons/:id/register", h.Pages.RegisterLatestStudent)
		r.POST("/hackathons/:id/teams", h.Pages.GenerateTeams)
	}

	if h.Workspace == nil {
		return
	}
	api := r.Group(apiPrefix)
	api.GET("/state", h.Workspace.State)
	api.GET("/dashboard", h.Workspace.Dashboard)
	api.PUT("/view", h.Workspace.Navigate)

	api.GET("/students", h.Workspace.ListStudents)
	api.POST("/students", h.Workspace.RegisterStudent)

	api.GET("/hackathons", h.Workspace.ListHackathons)
	api.POST("/hackathons", h.Workspace.CreateHackathon)
	api.GET("/hackathons/:id", h.Workspace.GetHackathon)
	api.POST("/hackathons/:id/registrations", h.Workspace.RegisterLatestStudent)
	api.POST("/hackathons/:id/teams", h.Workspace.GenerateTeams)
	api.GET("/hackathons/:id/teams", h.Workspace.Teams)
	api.GET("/hackathons/:id/teams/export", h.Workspace.ExportTeams)

	api.GET("/notification", h.Workspace.Notification)
	api.DELETE("/notification/:token", h.Workspace.DismissNotification)
}
