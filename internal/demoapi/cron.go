package demoapi

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Scheduler runs the demo server's background jobs: marking past confirmed
// appointments completed, and the optional periodic reseed.
type Scheduler struct {
	cron  *gocron.Scheduler
	store *Store
	log   zerolog.Logger
}

func NewScheduler(store *Store, resetEvery time.Duration, log zerolog.Logger) *Scheduler {
	s := &Scheduler{
		cron:  gocron.NewScheduler(time.Local),
		store: store,
		log:   log,
	}

	s.cron.Every(1).Minute().Do(func() {
		if n := s.store.AutoCompletePast(time.Now()); n > 0 {
			s.log.Info().Int("count", n).Msg("auto-completed past appointments")
		}
	})

	if resetEvery > 0 {
		s.cron.Every(resetEvery).Do(func() {
			s.store.Reset()
			s.log.Info().Msg("demo data reset to fixtures")
		})
	}

	return s
}

func (s *Scheduler) Start() { s.cron.StartAsync() }
func (s *Scheduler) Stop()  { s.cron.Stop() }
