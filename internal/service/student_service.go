package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
)

// Student registration messages.
const (
	msgDuplicateStudent = "Error: Student with this email or roll number already exists."
	msgStudentCreated   = "Student \"%s\" registered successfully!"
)

// StudentService handles roster use-cases on a workspace state.
type StudentService struct {
	validator *validator.Validate
	ids       IDGenerator
	now       func() time.Time
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(validate *validator.Validate, ids IDGenerator, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if ids == nil {
		ids = NewClockIDGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{validator: validate, ids: ids, now: time.Now, logger: logger}
}

// Register appends a new student unless the email or roll number is taken.
// The state is untouched on any error.
func (s *StudentService) Register(state *models.AppState, form models.StudentForm) (*models.Student, error) {
	form = form.Normalize()
	if err := s.validator.Struct(form); err != nil {
		return nil, validationError(err)
	}
	if state.HasStudentWith(form.Email, form.RollNumber) {
		s.logger.Debug("duplicate student rejected", zap.String("roll_number", form.RollNumber))
		return nil, appErrors.Clone(appErrors.ErrConflict, msgDuplicateStudent)
	}
	student := models.Student{
		ID:           s.ids.NewID("S"),
		Name:         form.Name,
		RollNumber:   form.RollNumber,
		Course:       form.Course,
		Year:         form.Year,
		Batch:        form.Batch,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		RegisteredAt: s.now().UTC(),
	}
	state.Students = append(state.Students, student)
	return &student, nil
}

// SuccessMessage is the banner text for a registered student.
func (s *StudentService) SuccessMessage(student *models.Student) string {
	return fmt.Sprintf(msgStudentCreated, student.Name)
}

// List filters and paginates the roster in registration order.
func (s *StudentService) List(state *models.AppState, filter models.StudentFilter) ([]models.Student, *models.Pagination) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.Student, 0, len(state.Students))
	for _, st := range state.Students {
		if search == "" ||
			strings.Contains(strings.ToLower(st.Name), search) ||
			strings.Contains(strings.ToLower(st.Email), search) ||
			strings.Contains(strings.ToLower(st.RollNumber), search) {
			matched = append(matched, st)
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}

	start := (page - 1) * size
	if start >= len(matched) {
		return []models.Student{}, pagination
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination
}
