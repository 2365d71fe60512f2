package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"agriconnect-backend/internal/jobs"
	"agriconnect-backend/internal/logger"
)

// Scheduler drives the background jobs off cron expressions from the
// scheduler config section. All schedules use seconds precision and UTC.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		jobs: jobRunner,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.CloseExpiredAuctions, s.jobs.CloseExpiredAuctions); err != nil {
		logger.Error("Failed to register deadline sweep", "schedule", cfg.CloseExpiredAuctions, "error", err)
		return
	}
	logger.Info("Deadline sweep registered", "schedule", cfg.CloseExpiredAuctions)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop waits for any in-flight job to finish before returning.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}
