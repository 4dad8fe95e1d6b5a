package persistence

import (
	"fsd/internal/persistence/interfaces"
	"fsd/internal/providers"
	"fsd/internal/services"
	"fsd/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Scheduler drives the two periodic jobs: the render tick that pushes
// SYNC_SEGMENTS to subscribers while a session is active, and the safety
// persist of the full state (the tracker also persists on every mutation;
// the interval job covers category and cache writes between mutations).
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.SessionServiceInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.service.Persist(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting state: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted daemon state")
	})

	s.cron.AddFunc(gron.Every(s.config.Tracker.TickInterval), func() {
		s.service.BroadcastTick()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting daemon state to file...")
	if err := s.service.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting state: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.SessionServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
