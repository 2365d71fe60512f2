package jobs

import (
	"agriconnect-backend/internal/config"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository"
	"agriconnect-backend/internal/service"
)

// JobRunner owns the dependencies shared by all background jobs.
type JobRunner struct {
	store    repository.Store
	services *Services
	config   *config.Config
}

// Services lists the service-layer dependencies jobs call into.
type Services struct {
	Settlement service.SettlementService
}

func NewJobRunner(store repository.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery keeps a panicking job from taking down the scheduler.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job finished", "job", jobName)
}
