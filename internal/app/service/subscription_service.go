package service

import (
	"context"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
)

type ChangePlanInput struct {
	Plan      model.SubscriptionPlan
	ExpiresAt *time.Time
}

type SubscriptionService interface {
	GetSubscription(ctx context.Context, venueID string) (*model.Subscription, error)
	ChangePlan(ctx context.Context, venueID string, input ChangePlanInput) (*model.Subscription, error)
	ExpireDue(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	venueRepo        repository.VenueRepository
	subscriptionRepo repository.SubscriptionRepository
	cache            DetailsCache
	now              func() time.Time
}

func NewSubscriptionService(venueRepo repository.VenueRepository, subscriptionRepo repository.SubscriptionRepository, cache DetailsCache) SubscriptionService {
	return &subscriptionService{
		venueRepo:        venueRepo,
		subscriptionRepo: subscriptionRepo,
		cache:            cache,
		now:              time.Now,
	}
}

func (s *subscriptionService) GetSubscription(ctx context.Context, venueID string) (*model.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("load subscription", err, ErrVenueNotFound)
	}
	return subscription, nil
}

// ChangePlan moves the venue to a plan. Paid plans need a future expiry; free never expires.
func (s *subscriptionService) ChangePlan(ctx context.Context, venueID string, input ChangePlanInput) (*model.Subscription, error) {
	if !input.Plan.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"plan_id": ErrInvalidPlan.Error()}}
	}
	now := s.now()
	expiresAt := input.ExpiresAt
	if input.Plan == model.PlanFree {
		expiresAt = nil
	} else if expiresAt == nil || !expiresAt.After(now) {
		return nil, &ValidationError{Fields: map[string]string{"expires_at": "must be in the future for paid plans"}}
	}

	if _, err := s.venueRepo.FindByID(ctx, venueID); err != nil {
		return nil, storeError("load venue", err, ErrVenueNotFound)
	}

	subscription := &model.Subscription{
		VenueID:   venueID,
		PlanID:    input.Plan,
		IsActive:  true,
		StartsAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return nil, storeError("change subscription plan", err, nil)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, venueID); err != nil {
			logger.Warn("Failed to invalidate venue details cache", map[string]interface{}{
				"venue_id": venueID,
				"error":    err.Error(),
			})
		}
	}

	logger.Info("Subscription plan changed", map[string]interface{}{
		"venue_id": venueID,
		"plan_id":  input.Plan,
	})
	return s.GetSubscription(ctx, venueID)
}

// ExpireDue reverts lapsed paid subscriptions to the free plan.
func (s *subscriptionService) ExpireDue(ctx context.Context) (int64, error) {
	count, err := s.subscriptionRepo.ExpireDue(ctx, s.now())
	if err != nil {
		return 0, storeError("expire subscriptions", err, nil)
	}
	if count > 0 {
		logger.Info("Expired subscriptions", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
