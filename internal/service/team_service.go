package service

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
)

// DefaultTeamSize is the number of members per generated team.
const DefaultTeamSize = 4

const msgTeamsGenerated = "Teams generated for \"%s\"!"

// RandomSource draws a uniform integer in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// TeamService partitions hackathon rosters into teams.
type TeamService struct {
	size   int
	rng    RandomSource
	logger *zap.Logger
}

// NewTeamService constructs the team service. A nil source uses the
// goroutine-safe math/rand/v2 global generator.
func NewTeamService(size int, rng RandomSource, logger *zap.Logger) *TeamService {
	if size <= 0 {
		size = DefaultTeamSize
	}
	if rng == nil {
		rng = globalRandom{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{size: size, rng: rng, logger: logger}
}

// Size returns the configured team size.
func (s *TeamService) Size() int {
	return s.size
}

// Generate reshuffles the hackathon roster and replaces its teams wholesale.
func (s *TeamService) Generate(state *models.AppState, hackathonID string) (*models.Hackathon, error) {
	hackathon, ok := state.FindHackathon(hackathonID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgHackathonNotFound)
	}
	if len(hackathon.RegisteredStudents) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, msgNoRegisteredToGroup)
	}
	hackathon.Teams = Partition(hackathon.ID, hackathon.RegisteredStudents, s.size, s.rng)
	s.logger.Debug("teams generated",
		zap.String("hackathon_id", hackathon.ID),
		zap.Int("students", len(hackathon.RegisteredStudents)),
		zap.Int("teams", len(hackathon.Teams)),
	)
	out := *hackathon
	return &out, nil
}

// SuccessMessage is the banner text after generating teams.
func (s *TeamService) SuccessMessage(h *models.Hackathon) string {
	return fmt.Sprintf(msgTeamsGenerated, h.Name)
}

// Partition shuffles a copy of the roster and cuts it into consecutive teams
// of size members; only the last team may be smaller.
func Partition(hackathonID string, roster []models.Student, size int, rng RandomSource) []models.Team {
	if size <= 0 {
		size = DefaultTeamSize
	}
	shuffled := append([]models.Student{}, roster...)
	Shuffle(shuffled, rng)

	teams := make([]models.Team, 0, (len(shuffled)+size-1)/size)
	for start := 0; start < len(shuffled); start += size {
		end := start + size
		if end > len(shuffled) {
			end = len(shuffled)
		}
		members := make([]models.TeamMember, 0, end-start)
		for _, st := range shuffled[start:end] {
			members = append(members, models.MemberOf(st))
		}
		teams = append(teams, models.Team{
			ID:          TeamID(hackathonID, len(teams)+1),
			HackathonID: hackathonID,
			Members:     members,
		})
	}
	return teams
}

// Shuffle is an in-place Fisher-Yates shuffle: walking i from the last index
// down to 1, swap i with a uniform j in [0, i].
func Shuffle[T any](items []T, rng RandomSource) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// TeamID is "T" + the hackathon id without its type tag + "-" + the 1-based sequence.
func TeamID(hackathonID string, seq int) string {
	rest := hackathonID
	if len(rest) > 0 {
		rest = rest[1:]
	}
	return fmt.Sprintf("T%s-%d", rest, seq)
}
