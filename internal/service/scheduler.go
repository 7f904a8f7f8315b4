package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SchedulerConfig holds the cron specs of the background jobs
type SchedulerConfig struct {
	ReminderSchedule  string        // bill reminders; each user is reminded only in their reminder hour
	ChallengeSchedule string        // challenge refresh for every user
	SnapshotSchedule  string        // daily net worth snapshot
	JobTimeout        time.Duration // upper bound on one job run
}

// DefaultSchedulerConfig returns sensible defaults
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		ReminderSchedule:  "0 * * * *",
		ChallengeSchedule: "@every 6h",
		SnapshotSchedule:  "5 0 * * *",
		JobTimeout:        10 * time.Minute,
	}
}

// Scheduler runs the per-user background jobs on cron schedules
type Scheduler struct {
	cron       *cron.Cron
	users      domain.UserRepository
	challenges *ChallengeService
	reminders  *ReminderService
	insights   *InsightService
	config     SchedulerConfig
	logger     zerolog.Logger
	mu         sync.Mutex
	running    bool
}

// NewScheduler creates a scheduler and registers its jobs. It fails on an invalid cron spec.
func NewScheduler(
	users domain.UserRepository,
	challenges *ChallengeService,
	reminders *ReminderService,
	insights *InsightService,
	logger zerolog.Logger,
	config SchedulerConfig,
) (*Scheduler, error) {
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultSchedulerConfig().JobTimeout
	}

	s := &Scheduler{
		cron:       cron.New(),
		users:      users,
		challenges: challenges,
		reminders:  reminders,
		insights:   insights,
		config:     config,
		logger:     logger.With().Str("component", "scheduler").Logger(),
	}

	jobs := []struct {
		spec string
		name string
		run  func(context.Context, *domain.User) error
	}{
		{config.ReminderSchedule, "bill_reminders", s.remind},
		{config.ChallengeSchedule, "challenge_refresh", s.refreshChallenges},
		{config.SnapshotSchedule, "net_worth_snapshot", s.snapshotNetWorth},
	}
	for _, job := range jobs {
		job := job
		if job.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, func() { s.RunForAllUsers(context.Background(), job.name, job.run) }); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Starting scheduler")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info().Msg("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunForAllUsers runs one job for every user. A failure for one user is logged
// and does not stop the others.
func (s *Scheduler) RunForAllUsers(ctx context.Context, name string, run func(context.Context, *domain.User) error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("job", name).Msg("Failed to list users")
		return
	}

	failed := 0
	for _, u := range users {
		if ctx.Err() != nil {
			s.logger.Warn().Str("job", name).Msg("Job timed out")
			break
		}
		if err := run(ctx, u); err != nil {
			failed++
			s.logger.Error().Err(err).Str("job", name).Str("user_id", u.ID.String()).Msg("Job failed for user")
		}
	}

	s.logger.Info().
		Str("job", name).
		Int("users", len(users)).
		Int("failed", failed).
		Msg("Job completed")
}

func (s *Scheduler) remind(ctx context.Context, u *domain.User) error {
	_, err := s.reminders.Remind(ctx, u)
	return err
}

func (s *Scheduler) refreshChallenges(ctx context.Context, u *domain.User) error {
	_, err := s.challenges.Refresh(ctx, u.ID)
	return err
}

func (s *Scheduler) snapshotNetWorth(ctx context.Context, u *domain.User) error {
	_, err := s.insights.RecordNetWorth(ctx, u.ID)
	return err
}
