// ABOUTME: Coach service orchestrating users, practice, and phase advancement.
// ABOUTME: Every surface (HTTP, MCP, CLI) goes through this type rather than the store.
package coach

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/logger"
	"github.com/harperreed/singsmart/internal/models"
	"github.com/harperreed/singsmart/internal/progress"
	"github.com/harperreed/singsmart/internal/storage"
)

// MinutesPolicy selects when a completion adds to totalPracticeMinutes.
type MinutesPolicy string

const (
	// MinutesEveryCompletion credits the exercise duration on every submission.
	MinutesEveryCompletion MinutesPolicy = "every"
	// MinutesFirstCompletion credits it only the first time an exercise is completed.
	MinutesFirstCompletion MinutesPolicy = "first"
)

// IsValidMinutesPolicy checks if s names a MinutesPolicy.
func IsValidMinutesPolicy(s string) bool {
	return s == string(MinutesEveryCompletion) || s == string(MinutesFirstCompletion)
}

// Options tunes the service. Zero values select the defaults.
type Options struct {
	NewUserPhase      int
	MinutesPolicy     MinutesPolicy
	WeeklyGoalMinutes int
	StatsWindow       time.Duration
	Now               func() time.Time
}

func (o Options) withDefaults() Options {
	if !models.IsValidPhase(o.NewUserPhase) {
		o.NewUserPhase = models.FirstPhase
	}
	if o.MinutesPolicy == "" {
		o.MinutesPolicy = MinutesEveryCompletion
	}
	if o.WeeklyGoalMinutes <= 0 {
		o.WeeklyGoalMinutes = progress.DefaultGoalMinutes
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Service implements the coaching operations over a Repository.
type Service struct {
	repo  storage.Repository
	opts  Options
	log   *logger.Logger
	locks userLocks
}

// New creates a Service. A nil log discards output.
func New(repo storage.Repository, opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		opts: opts.withDefaults(),
		log:  log,
	}
}

// ActiveUser resolves the user a request acts for. An empty userID selects
// the earliest-created user.
func (s *Service) ActiveUser(userID string) (*models.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return s.repo.FirstUser()
	}
	id, err := ParseID("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetUser(id)
}

// NewUser is the onboarding payload.
type NewUser struct {
	Name            string  `json:"name" validate:"required"`
	ExperienceLevel string  `json:"experienceLevel" validate:"required,oneof=beginner intermediate advanced"`
	VocalRange      *string `json:"vocalRange" validate:"omitempty,oneof=soprano alto tenor baritone bass"`
}

// CreateUser validates and stores a new user.
func (s *Service) CreateUser(in NewUser) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.VocalRange != nil {
		r := strings.ToLower(strings.TrimSpace(*in.VocalRange))
		in.VocalRange = &r
		if r == "" {
			in.VocalRange = nil
		}
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	u := models.NewUser(in.Name, models.ExperienceLevel(in.ExperienceLevel)).WithPhase(s.opts.NewUserPhase)
	u.CreatedAt = s.opts.Now()
	if in.VocalRange != nil {
		u.WithVocalRange(models.VocalRange(*in.VocalRange))
	}
	if err := s.repo.CreateUser(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", "user_id", u.ID, "phase", u.CurrentPhase)
	return u, nil
}

// UpdateUser validates and merges patch into the user. ClearVocalRange
// removes the range.
func (s *Service) UpdateUser(userID string, patch models.UserPatch) (*models.User, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if patch.VocalRange != nil {
		r := models.VocalRange(strings.ToLower(string(*patch.VocalRange)))
		patch.VocalRange = &r
	}
	if err := checkStruct(patch); err != nil {
		return nil, err
	}
	if patch.ClearVocalRange {
		patch.VocalRange = nil
	}

	defer s.locks.lock(u.ID)()
	return s.repo.UpdateUser(u.ID, patch)
}

// ResetProgress returns the user to the start of phase 1 and clears their progress.
func (s *Service) ResetProgress(userID string) (*models.User, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}

	defer s.locks.lock(u.ID)()
	reset, err := s.repo.ResetUserProgress(u.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("progress reset", "user_id", u.ID, "from_phase", u.CurrentPhase)
	return reset, nil
}

// BreakStaleStreaks zeroes the streak of users who practiced neither today nor
// yesterday, relative to now. It returns how many streaks were broken.
func (s *Service) BreakStaleStreaks(now time.Time) (int, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	broken := 0
	for _, u := range users {
		if u.Streak == 0 || !streakExpired(u.LastPracticedAt, now) {
			continue
		}
		ok, err := s.breakStreak(u.ID, now)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return broken, err
		}
		if ok {
			broken++
		}
	}
	if broken > 0 {
		s.log.Info("streaks broken", "count", broken)
	}
	return broken, nil
}

func (s *Service) breakStreak(id uuid.UUID, now time.Time) (bool, error) {
	defer s.locks.lock(id)()

	// Re-read under the lock; a completion may have landed meanwhile.
	u, err := s.repo.GetUser(id)
	if err != nil {
		return false, err
	}
	if u.Streak == 0 || !streakExpired(u.LastPracticedAt, now) {
		return false, nil
	}
	zero := 0
	if _, err := s.repo.UpdateUser(id, models.UserPatch{Streak: &zero}); err != nil {
		return false, err
	}
	return true, nil
}
