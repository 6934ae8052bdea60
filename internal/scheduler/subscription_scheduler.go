package scheduler

import (
	"context"
	"time"

	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultExpirySpec runs the expiry sweep every night at 03:00.
const DefaultExpirySpec = "0 3 * * *"

const sweepTimeout = 2 * time.Minute

// SubscriptionExpirer is the part of the subscription service the scheduler drives.
type SubscriptionExpirer interface {
	ExpireDue(ctx context.Context) (int64, error)
}

// SubscriptionScheduler reverts lapsed paid subscriptions to the free plan on a cron schedule.
type SubscriptionScheduler struct {
	cron    *cron.Cron
	spec    string
	expirer SubscriptionExpirer
}

func NewSubscriptionScheduler(expirer SubscriptionExpirer, spec string) *SubscriptionScheduler {
	if spec == "" {
		spec = DefaultExpirySpec
	}
	return &SubscriptionScheduler{
		cron:    cron.New(),
		spec:    spec,
		expirer: expirer,
	}
}

func (s *SubscriptionScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for subscription expiry", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Subscription scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce performs a single expiry sweep.
func (s *SubscriptionScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.expirer.ExpireDue(ctx)
	if err != nil {
		logger.Error("Scheduled subscription expiry failed", err)
		return
	}

	logger.Info("Scheduled subscription expiry finished", map[string]interface{}{
		"expired": count,
	})
}

// Stop waits for a running sweep to finish.
func (s *SubscriptionScheduler) Stop() {
	logger.Info("Stopping subscription scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Subscription scheduler stopped")
}
