package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/timezone"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs background jobs on cron specs in the business time zone.
type Scheduler struct {
	cron *cron.Cron
}

func New(tz string) *Scheduler {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.Location(tz)),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Add registers job under spec. An empty spec leaves the job disabled.
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	log := logrus.WithField("job", name)
	if spec == "" {
		log.Info("job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			log.WithError(err).Error("job failed")
			return
		}
		log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("job finished")
	})
	if err != nil {
		return err
	}

	log.WithField("spec", spec).Info("job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logrus.Warn("scheduler stop timed out")
	}
}
