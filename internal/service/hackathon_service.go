package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
)

// Hackathon messages.
const (
	msgHackathonCreated    = "Hackathon \"%s\" created!"
	msgHackathonNotFound   = "Hackathon not found."
	msgNoStudents          = "Please register a student first."
	msgAlreadyRegistered   = "Student \"%s\" is already registered for this hackathon."
	msgStudentEnrolled     = "\"%s\" registered for \"%s\"."
	msgNoRegisteredToGroup = "No registered students to form teams."
)

// RegistrationResult describes the outcome of enrolling the latest student.
type RegistrationResult struct {
	Hackathon         models.Hackathon `json:"hackathon"`
	Student           models.Student   `json:"student"`
	AlreadyRegistered bool             `json:"alreadyRegistered"`
}

// Message is the banner text for the registration outcome.
func (r *RegistrationResult) Message() string {
	if r.AlreadyRegistered {
		return fmt.Sprintf(msgAlreadyRegistered, r.Student.Name)
	}
	return fmt.Sprintf(msgStudentEnrolled, r.Student.Name, r.Hackathon.Name)
}

// HackathonService handles hackathon use-cases on a workspace state.
type HackathonService struct {
	validator *validator.Validate
	ids       IDGenerator
	now       func() time.Time
	logger    *zap.Logger
}

// NewHackathonService constructs the hackathon service.
func NewHackathonService(validate *validator.Validate, ids IDGenerator, logger *zap.Logger) *HackathonService {
	if validate == nil {
		validate = NewValidator()
	}
	if ids == nil {
		ids = NewClockIDGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HackathonService{validator: validate, ids: ids, now: time.Now, logger: logger}
}

// Create appends a new hackathon with empty roster and teams.
func (s *HackathonService) Create(state *models.AppState, form models.HackathonForm) (*models.Hackathon, error) {
	form = form.Normalize()
	if err := s.validator.Struct(form); err != nil {
		return nil, validationError(err)
	}
	hackathon := models.Hackathon{
		ID:                 s.ids.NewID("H"),
		Name:               form.Name,
		Date:               form.Date,
		Description:        form.Description,
		MaxTeams:           form.MaxTeams,
		RegisteredStudents: []models.Student{},
		Teams:              []models.Team{},
		CreatedAt:          s.now().UTC(),
	}
	state.Hackathons = append(state.Hackathons, hackathon)
	return &hackathon, nil
}

// SuccessMessage is the banner text for a created hackathon.
func (s *HackathonService) SuccessMessage(h *models.Hackathon) string {
	return fmt.Sprintf(msgHackathonCreated, h.Name)
}

// RegisterLatestStudent enrols the most recently registered student of the
// workspace. There is deliberately no way to pick another student.
// Registering a student twice is not an error: the result reports
// AlreadyRegistered and the state is left as is.
func (s *HackathonService) RegisterLatestStudent(state *models.AppState, hackathonID string) (*RegistrationResult, error) {
	student, ok := state.LatestStudent()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, msgNoStudents)
	}
	hackathon, ok := state.FindHackathon(hackathonID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgHackathonNotFound)
	}
	result := &RegistrationResult{Student: student}
	if hackathon.HasStudent(student.ID) {
		result.AlreadyRegistered = true
		result.Hackathon = *hackathon
		return result, nil
	}
	hackathon.RegisteredStudents = append(hackathon.RegisteredStudents, student)
	result.Hackathon = *hackathon
	s.logger.Debug("student enrolled", zap.String("hackathon_id", hackathonID), zap.String("student_id", student.ID))
	return result, nil
}

// Get returns a copy of one hackathon.
func (s *HackathonService) Get(state *models.AppState, hackathonID string) (*models.Hackathon, error) {
	hackathon, ok := state.FindHackathon(hackathonID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgHackathonNotFound)
	}
	out := *hackathon
	return &out, nil
}
