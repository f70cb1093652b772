// Package schedule keeps the App's notion of today current.
package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// DayAdvancer is the part of store.App the scheduler drives.
type DayAdvancer interface {
	AdvanceDay(now time.Time) bool
}

// Scheduler wraps a gocron scheduler running the day rollover jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	target    DayAdvancer
	now       func() time.Time
}

// New creates a scheduler that advances target at local midnight in loc and
// additionally every interval, which covers missed midnights after a suspend.
func New(target DayAdvancer, loc *time.Location, interval time.Duration) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	sch := &Scheduler{scheduler: s, target: target, now: time.Now}

	if _, err := s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(sch.rollover, "midnight"),
		gocron.WithName("day-rollover"),
	); err != nil {
		return nil, fmt.Errorf("failed to create day rollover job: %w", err)
	}

	if interval > 0 {
		if _, err := s.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(sch.rollover, "interval"),
			gocron.WithName("day-check"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return nil, fmt.Errorf("failed to create day check job: %w", err)
		}
	}

	return sch, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	log.Printf("Starting scheduler")
	s.target.AdvanceDay(s.now())
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	log.Printf("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) rollover(trigger string) {
	if s.target.AdvanceDay(s.now()) {
		log.Printf("Day advanced (%s)", trigger)
	}
}
