// ABOUTME: Background jobs run on a gocron scheduler.
// ABOUTME: The daily streak check zeroes streaks of users who skipped a day.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/harperreed/singsmart/internal/logger"
)

// DefaultStreakCheck is the local time of day the streak check runs.
const DefaultStreakCheck = "00:05"

// StreakBreaker zeroes stale streaks relative to now.
type StreakBreaker interface {
	BreakStaleStreaks(now time.Time) (int, error)
}

// Scheduler manages scheduled tasks for the server.
type Scheduler struct {
	scheduler *gocron.Scheduler
	streaks   StreakBreaker
	now       func() time.Time
	log       *logger.Logger
}

// New creates a scheduler in the given location. A nil loc means time.Local.
func New(streaks StreakBreaker, loc *time.Location, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		streaks:   streaks,
		now:       time.Now,
		log:       log,
	}
}

// Start schedules the streak check daily at the HH:MM time at and starts
// running jobs in the background.
func (s *Scheduler) Start(at string) error {
	if at == "" {
		at = DefaultStreakCheck
	}
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.checkStreaks); err != nil {
		return fmt.Errorf("schedule streak check at %q: %w", at, err)
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started", "streak_check", at)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Jobs reports how many jobs are scheduled.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) checkStreaks() {
	n, err := s.streaks.BreakStaleStreaks(s.now())
	if err != nil {
		s.log.Error("streak check failed", "error", err)
		return
	}
	s.log.Debug("streak check finished", "broken", n)
}
