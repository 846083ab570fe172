package service

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
	"github.com/noah-isme/codereg/pkg/jobs"
	"github.com/noah-isme/codereg/pkg/middleware/session"
)

const lockStripes = 64

// Operation names used for logs and metrics.
const (
	OpRegisterStudent = "register_student"
	OpCreateHackathon = "create_hackathon"
	OpRegisterLatest  = "register_latest_student"
	OpGenerateTeams   = "generate_teams"
	OpNavigate        = "navigate"
	OpDismissNotice   = "dismiss_notification"
)

const (
	defaultSessionTTL = 12 * time.Hour
	clearTimeout      = 5 * time.Second
)

// StateRepository persists one AppState per session. Load reports
// errors.ErrStateMiss for unknown or expired sessions.
type StateRepository interface {
	Load(ctx context.Context, sessionID string) (*models.AppState, error)
	Save(ctx context.Context, sessionID string, state *models.AppState, ttl time.Duration) error
}

// WorkspaceConfig tunes session lifetime and the banner timer.
type WorkspaceConfig struct {
	SessionTTL      time.Duration
	NotificationTTL time.Duration
}

// WorkspaceService is the controller owning every workspace. Each operation
// loads the session's state, applies the change to a private copy and saves
// it, all under a per-session lock, so an operation either lands whole or
// leaves the stored state untouched.
type WorkspaceService struct {
	repo       StateRepository
	students   *StudentService
	hackathons *HackathonService
	teams      *TeamService
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        WorkspaceConfig

	locks    [lockStripes]sync.Mutex
	schedule func(time.Duration, NotificationClear) error
	now      func() time.Time
}

// NotificationClear asks for the banner carrying Token to be cleared in a session.
type NotificationClear struct {
	SessionID string `json:"session_id"`
	Token     uint64 `json:"token"`
}

// NewWorkspaceService wires the controller.
func NewWorkspaceService(repo StateRepository, students *StudentService, hackathons *HackathonService, teams *TeamService, metrics *MetricsService, cfg WorkspaceConfig, logger *zap.Logger) *WorkspaceService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if students == nil {
		students = NewStudentService(nil, nil, logger)
	}
	if hackathons == nil {
		hackathons = NewHackathonService(nil, nil, logger)
	}
	if teams == nil {
		teams = NewTeamService(DefaultTeamSize, nil, logger)
	}
	svc := &WorkspaceService{
		repo:       repo,
		students:   students,
		hackathons: hackathons,
		teams:      teams,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
	svc.schedule = svc.clearAfter
	return svc
}

// SetClearScheduler routes banner clears through an external scheduler such
// as a jobs.Queue. Without one, clears run on time.AfterFunc.
func (s *WorkspaceService) SetClearScheduler(schedule func(time.Duration, NotificationClear) error) {
	if schedule != nil {
		s.schedule = schedule
	}
}

// HandleClear runs one queued banner clear.
func (s *WorkspaceService) HandleClear(ctx context.Context, job jobs.Job[NotificationClear]) error {
	_, err := s.DismissNotification(ctx, job.Payload.SessionID, job.Payload.Token)
	return err
}

// Snapshot returns the current state of the session, a fresh one if none exists yet.
func (s *WorkspaceService) Snapshot(ctx context.Context, sessionID string) (*models.AppState, error) {
	unlock := s.lock(sessionID)
	defer unlock()
	return s.load(ctx, sessionID)
}

// RegisterStudent adds a student to the roster. On success the form draft is
// reset and the dashboard is shown; on rejection the draft keeps the input.
func (s *WorkspaceService) RegisterStudent(ctx context.Context, sessionID string, form models.StudentForm) (*models.Student, *models.Notification, error) {
	var created *models.Student
	_, notice, err := s.apply(ctx, sessionID, OpRegisterStudent, func(work *models.AppState) (models.NotificationKind, string, error) {
		student, err := s.students.Register(work, form)
		if err != nil {
			return "", "", err
		}
		created = student
		work.StudentDraft = models.StudentForm{}
		work.ActiveView = models.ViewDashboard
		return models.NotificationSuccess, s.students.SuccessMessage(student), nil
	}, func(work *models.AppState) {
		work.StudentDraft = form.Normalize()
	})
	if err != nil {
		return nil, notice, err
	}
	s.metrics.RecordStudentRegistered()
	s.logger.Info("student registered", zap.String("session_id", session.Short(sessionID)), zap.String("student_id", created.ID))
	return created, notice, nil
}

// CreateHackathon adds a hackathon. Draft handling mirrors RegisterStudent.
func (s *WorkspaceService) CreateHackathon(ctx context.Context, sessionID string, form models.HackathonForm) (*models.Hackathon, *models.Notification, error) {
	var created *models.Hackathon
	_, notice, err := s.apply(ctx, sessionID, OpCreateHackathon, func(work *models.AppState) (models.NotificationKind, string, error) {
		hackathon, err := s.hackathons.Create(work, form)
		if err != nil {
			return "", "", err
		}
		created = hackathon
		work.HackathonDraft = models.HackathonForm{}
		work.ActiveView = models.ViewDashboard
		return models.NotificationSuccess, s.hackathons.SuccessMessage(hackathon), nil
	}, func(work *models.AppState) {
		work.HackathonDraft = form.Normalize()
	})
	if err != nil {
		return nil, notice, err
	}
	s.logger.Info("hackathon created", zap.String("session_id", session.Short(sessionID)), zap.String("hackathon_id", created.ID))
	return created, notice, nil
}

// RegisterLatestStudent enrols the most recently registered student into the hackathon.
func (s *WorkspaceService) RegisterLatestStudent(ctx context.Context, sessionID, hackathonID string) (*RegistrationResult, *models.Notification, error) {
	var result *RegistrationResult
	_, notice, err := s.apply(ctx, sessionID, OpRegisterLatest, func(work *models.AppState) (models.NotificationKind, string, error) {
		res, err := s.hackathons.RegisterLatestStudent(work, hackathonID)
		if err != nil {
			return "", "", err
		}
		result = res
		if res.AlreadyRegistered {
			return models.NotificationInfo, res.Message(), nil
		}
		return models.NotificationSuccess, res.Message(), nil
	}, nil)
	if err != nil {
		return nil, notice, err
	}
	return result, notice, nil
}

// GenerateTeams partitions the hackathon roster, points the team view at the
// hackathon and switches to it.
func (s *WorkspaceService) GenerateTeams(ctx context.Context, sessionID, hackathonID string) (*models.Hackathon, *models.Notification, error) {
	var updated *models.Hackathon
	_, notice, err := s.apply(ctx, sessionID, OpGenerateTeams, func(work *models.AppState) (models.NotificationKind, string, error) {
		hackathon, err := s.teams.Generate(work, hackathonID)
		if err != nil {
			return "", "", err
		}
		updated = hackathon
		work.CurrentHackathonID = hackathon.ID
		work.ActiveView = models.ViewTeams
		return models.NotificationSuccess, s.teams.SuccessMessage(hackathon), nil
	}, nil)
	if err != nil {
		return nil, notice, err
	}
	s.metrics.RecordTeamsGenerated(len(updated.Teams))
	s.logger.Info("teams generated",
		zap.String("session_id", session.Short(sessionID)),
		zap.String("hackathon_id", updated.ID),
		zap.Int("teams", len(updated.Teams)),
	)
	return updated, notice, nil
}

// Navigate selects a view from the navigation bar. The team view cannot be
// selected this way.
func (s *WorkspaceService) Navigate(ctx context.Context, sessionID string, view models.View) (*models.AppState, error) {
	if !view.Navigable() {
		s.metrics.RecordOperation(OpNavigate, string(models.NotificationError))
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown view "+string(view))
	}
	unlock := s.lock(sessionID)
	defer unlock()
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.ActiveView = view
	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	s.metrics.RecordOperation(OpNavigate, string(models.NotificationSuccess))
	return state, nil
}

// DismissNotification clears the banner only when it still shows token.
// It reports whether the banner was cleared.
func (s *WorkspaceService) DismissNotification(ctx context.Context, sessionID string, token uint64) (bool, error) {
	unlock := s.lock(sessionID)
	defer unlock()
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if state.Notification == nil || state.Notification.Token != token {
		return false, nil
	}
	state.Notification = nil
	if err := s.save(ctx, sessionID, state); err != nil {
		return false, err
	}
	s.metrics.RecordOperation(OpDismissNotice, string(models.NotificationSuccess))
	return true, nil
}

// ListStudents returns a page of the roster.
func (s *WorkspaceService) ListStudents(ctx context.Context, sessionID string, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	state, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	students, pagination := s.students.List(state, filter)
	return students, pagination, nil
}

// ListHackathons returns every hackathon in creation order.
func (s *WorkspaceService) ListHackathons(ctx context.Context, sessionID string) ([]models.Hackathon, error) {
	state, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Hackathons, nil
}

// GetHackathon returns a single hackathon.
func (s *WorkspaceService) GetHackathon(ctx context.Context, sessionID, hackathonID string) (*models.Hackathon, error) {
	state, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.hackathons.Get(state, hackathonID)
}

type applyFunc func(work *models.AppState) (models.NotificationKind, string, error)

// apply runs fn against a copy of the session state. A rejected operation
// (any non-internal error) discards the copy; only onReject and the error
// banner are applied to a fresh copy. Internal failures store nothing.
// The clear timer is armed after the session lock is released.
func (s *WorkspaceService) apply(ctx context.Context, sessionID, op string, fn applyFunc, onReject func(*models.AppState)) (*models.AppState, *models.Notification, error) {
	res, err := s.applyLocked(ctx, sessionID, op, fn, onReject)
	if err != nil {
		return nil, nil, err
	}
	s.scheduleClear(sessionID, res.notice.Token)
	s.metrics.RecordOperation(op, string(res.notice.Kind))
	return res.state, res.notice, res.rejection
}

// applied is the stored outcome of an operation; rejection is set when the
// operation was refused but its banner was still saved.
type applied struct {
	state     *models.AppState
	notice    *models.Notification
	rejection error
}

func (s *WorkspaceService) applyLocked(ctx context.Context, sessionID, op string, fn applyFunc, onReject func(*models.AppState)) (*applied, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	work := current.Clone()
	kind, message, opErr := fn(work)
	if opErr != nil {
		appErr := appErrors.FromError(opErr)
		if appErr.Status >= http.StatusInternalServerError {
			s.logger.Error("workspace operation failed", zap.String("operation", op), zap.Error(opErr))
			return nil, opErr
		}
		work = current.Clone()
		if onReject != nil {
			onReject(work)
		}
		kind, message = rejectionKind(appErr), appErr.Message
		s.logger.Debug("workspace operation rejected",
			zap.String("operation", op),
			zap.String("session_id", session.Short(sessionID)),
			zap.String("code", appErr.Code),
		)
	}

	notice := s.post(work, kind, message)
	if err := s.save(ctx, sessionID, work); err != nil {
		return nil, err
	}
	return &applied{state: work, notice: notice, rejection: opErr}, nil
}

// post replaces the banner with a message under the next token.
func (s *WorkspaceService) post(state *models.AppState, kind models.NotificationKind, message string) *models.Notification {
	state.NotificationSeq++
	notice := &models.Notification{
		Token:    state.NotificationSeq,
		Kind:     kind,
		Message:  message,
		PostedAt: s.now().UTC(),
	}
	state.Notification = notice
	out := *notice
	return &out
}

func (s *WorkspaceService) scheduleClear(sessionID string, token uint64) {
	if s.cfg.NotificationTTL <= 0 {
		return
	}
	req := NotificationClear{SessionID: sessionID, Token: token}
	if err := s.schedule(s.cfg.NotificationTTL, req); err != nil {
		s.logger.Warn("notification clear not scheduled", zap.String("session_id", session.Short(sessionID)), zap.Error(err))
	}
}

func (s *WorkspaceService) clearAfter(d time.Duration, req NotificationClear) error {
	time.AfterFunc(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
		defer cancel()
		if err := s.HandleClear(ctx, jobs.Job[NotificationClear]{Payload: req}); err != nil {
			s.logger.Warn("notification clear failed", zap.String("session_id", session.Short(req.SessionID)), zap.Error(err))
		}
	})
	return nil
}

func (s *WorkspaceService) load(ctx context.Context, sessionID string) (*models.AppState, error) {
	start := time.Now()
	state, err := s.repo.Load(ctx, sessionID)
	s.metrics.ObserveStore("load", time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrStateMiss) {
			return models.NewAppState(), nil
		}
		s.logger.Warn("workspace load failed", zap.String("session_id", session.Short(sessionID)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workspace")
	}
	return state, nil
}

func (s *WorkspaceService) save(ctx context.Context, sessionID string, state *models.AppState) error {
	state.UpdatedAt = s.now().UTC()
	start := time.Now()
	err := s.repo.Save(ctx, sessionID, state, s.cfg.SessionTTL)
	s.metrics.ObserveStore("save", time.Since(start))
	if err != nil {
		s.logger.Error("workspace save failed", zap.String("session_id", session.Short(sessionID)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save workspace")
	}
	return nil
}

func (s *WorkspaceService) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	m := &s.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// rejectionKind maps a rejection onto banner styling: unmet preconditions
// warn, everything else is an error.
func rejectionKind(err *appErrors.Error) models.NotificationKind {
	if err.Code == appErrors.ErrPreconditionFailed.Code {
		return models.NotificationWarning
	}
	return models.NotificationError
}
