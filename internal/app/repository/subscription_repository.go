package repository

import (
	"context"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	FindByVenueID(ctx context.Context, venueID string) (*model.Subscription, error)
	Upsert(ctx context.Context, subscription *model.Subscription) error
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindByVenueID(ctx context.Context, venueID string) (*model.Subscription, error) {
	var subscription model.Subscription
	if err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).First(&subscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

// Upsert keeps one subscription row per venue, keyed on venue_id.
func (r *subscriptionRepository) Upsert(ctx context.Context, subscription *model.Subscription) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venue_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan_id", "is_active", "starts_at", "expires_at", "updated_at"}),
	}).Create(subscription).Error
	if err != nil {
		logger.Error("Failed to upsert subscription", err, map[string]interface{}{
			"venue_id": subscription.VenueID,
			"plan_id":  subscription.PlanID,
		})
		return err
	}
	return nil
}

// ExpireDue reverts every active paid subscription whose expires_at has passed to an inactive
// free plan and returns the number of rows changed.
func (r *subscriptionRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"plan_id":    model.PlanFree,
			"expires_at": nil,
		})
	if result.Error != nil {
		logger.Error("Failed to expire subscriptions", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
