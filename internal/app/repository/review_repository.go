package repository

import (
	"context"
	"database/sql"

	"github.com/emx/guzellikharitam-backend/internal/app/model"

	"gorm.io/gorm"
)

// ReviewRepository reads and writes the feedback attached to a venue: user reviews and
// the venue's promotional campaigns.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview stores a new review.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetReviewsByVenueID returns a page of reviews, newest first, plus the total count.
func (r *ReviewRepository) GetReviewsByVenueID(ctx context.Context, venueID string, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).Where("venue_id = ?", venueID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// GetAverageRating returns 0 when the venue has no reviews.
func (r *ReviewRepository) GetAverageRating(ctx context.Context, venueID string) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating)").
		Where("venue_id = ?", venueID).
		Row().
		Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReviewRepository) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// GetActiveCampaigns returns campaigns flagged active, newest first.
func (r *ReviewRepository) GetActiveCampaigns(ctx context.Context, venueID string) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND is_active = ?", venueID, true).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}
