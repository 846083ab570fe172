package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
	"github.com/noah-isme/codereg/pkg/export"
)

type brokenRenderer struct{}

func (brokenRenderer) Render(export.Dataset) ([]byte, error) { return nil, errors.New("font missing") }
func (brokenRenderer) ContentType() string { return "application/pdf" }

func teamedHackathon() *models.Hackathon {
	return &models.Hackathon{
		ID:   "H5",
		Name: "Hack",
		Teams: []models.Team{
			{ID: "T5-1", HackathonID: "H5", Members: []models.TeamMember{
				{ID: "S1", Name: "Ada", Email: "a@example.com"},
				{ID: "S2", Name: "Grace", Email: "g@example.com"},
			}},
			{ID: "T5-2", HackathonID: "H5", Members: []models.TeamMember{
				{ID: "S3", Name: "Linus", Email: "l@example.com"},
			}},
		},
	}
}

func TestExportTeamsCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	file, err := svc.ExportTeams(teamedHackathon(), "")
	require.NoError(t, err)

	assert.Equal(t, "teams-H5.csv", file.Filename)
	assert.True(t, strings.HasPrefix(file.ContentType, "text/csv"))
	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "team_id,member_id,name,email", lines[0])
	assert.Equal(t, "T5-2,S3,Linus,l@example.com", lines[3])
}

func TestExportTeamsPDF(t *testing.T) {
	file, err := NewExportService(nil, nil, nil).ExportTeams(teamedHackathon(), "PDF")
	require.NoError(t, err)

	assert.Equal(t, "teams-H5.pdf", file.Filename)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportTeamsRejections(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	_, err := svc.ExportTeams(&models.Hackathon{ID: "H1"}, "csv")
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	_, err = svc.ExportTeams(teamedHackathon(), "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportTeamsRenderFailureIsInternal(t *testing.T) {
	svc := NewExportService(nil, brokenRenderer{}, nil)

	_, err := svc.ExportTeams(teamedHackathon(), ExportFormatPDF)

	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestTeamsDatasetFlattensMembers(t *testing.T) {
	data := TeamsDataset(teamedHackathon())

	assert.Equal(t, "Teams for Hack", data.Title)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "T5-1", data.Rows[1]["team_id"])
	assert.Equal(t, "Grace", data.Rows[1]["name"])
}
