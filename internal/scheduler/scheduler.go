package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/blwclub/membership-portal/internal/metrics"
)

// limiterIdle is how long a client IP may stay silent before its login
// limiter is forgotten.
const limiterIdle = 30 * time.Minute

// ExpiringStore drops entries whose TTL has passed. The redis backend
// expires keys itself and has no need for one.
type ExpiringStore interface {
	PurgeExpired() int
}

type LimiterCleaner interface {
	Cleanup(maxIdle time.Duration) int
}

// Scheduler runs housekeeping for the in-process state.
type Scheduler struct {
	cron     *cron.Cron
	sessions ExpiringStore
	limiter  LimiterCleaner
}

// NewScheduler registers the housekeeping job on schedule. sessions may be
// nil.
func NewScheduler(schedule string, sessions ExpiringStore, limiter LimiterCleaner) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron:     c,
		sessions: sessions,
		limiter:  limiter,
	}

	if _, err := s.cron.AddFunc(schedule, s.Housekeeping); err != nil {
		return nil, err
	}

	return s, nil
}

// Housekeeping purges expired sessions and drafts, then idle login limiters.
func (s *Scheduler) Housekeeping() {
	if s.sessions != nil {
		purged := s.sessions.PurgeExpired()
		metrics.RecordPurge(purged)
		if purged > 0 {
			zap.L().Info("purged expired sessions", zap.Int("count", purged))
		}
	}

	if s.limiter != nil {
		if n := s.limiter.Cleanup(limiterIdle); n > 0 {
			zap.L().Debug("dropped idle login limiters", zap.Int("count", n))
		}
	}
}

func (s *Scheduler) Start() {
	zap.L().Info("starting scheduler")
	s.cron.Start()
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	zap.L().Info("scheduler stopped")
}
