package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
	"github.com/noah-isme/codereg/pkg/export"
)

// Export formats for team rosters.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var teamExportHeaders = []string{"team_id", "member_id", "name", "email"}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders a hackathon's teams as a downloadable roster.
type ExportService struct {
	csv    renderer
	pdf    renderer
	logger *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(csv, pdf renderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// TeamsDataset flattens the teams into one row per member.
func TeamsDataset(h *models.Hackathon) export.Dataset {
	rows := make([]map[string]string, 0)
	for _, team := range h.Teams {
		for _, m := range team.Members {
			rows = append(rows, map[string]string{
				"team_id":   team.ID,
				"member_id": m.ID,
				"name":      m.Name,
				"email":     m.Email,
			})
		}
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Teams for %s", h.Name),
		Headers: teamExportHeaders,
		Rows:    rows,
	}
}

// ExportTeams renders the hackathon's current teams in the requested format.
func (s *ExportService) ExportTeams(h *models.Hackathon, format string) (*ExportFile, error) {
	if len(h.Teams) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "No teams have been generated yet.")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}

	data := TeamsDataset(h)
	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(data)
		contentType = s.csv.ContentType()
	case ExportFormatPDF:
		body, err = s.pdf.Render(data)
		contentType = s.pdf.ContentType()
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
	if err != nil {
		s.logger.Error("team export failed", zap.String("hackathon_id", h.ID), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("teams-%s.%s", h.ID, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}
