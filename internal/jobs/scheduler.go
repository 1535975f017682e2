package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"wifiportal/internal/queue"
)

// Scheduler enqueues the recurring access-expiry sweep. The worker picks
// the task up from the portal stream and revokes lapsed grants.
type Scheduler struct {
	cron   *cron.Cron
	events *queue.Publisher
	spec   string
	log    zerolog.Logger
}

func NewScheduler(events *queue.Publisher, sweepSpec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		events: events,
		spec:   sweepSpec,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if s.events == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.enqueueSweep); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueueSweep() {
	if err := s.events.PublishAccessSweep(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("enqueue access sweep failed")
	}
}
