package repository

import (
	"context"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
)

type ServiceAssignmentRepository interface {
	FindByVenueID(ctx context.Context, venueID string) ([]model.VenueService, error)
	ReplaceForVenue(ctx context.Context, venueID string, assignments []model.VenueService) error
}

type serviceAssignmentRepository struct {
	db *gorm.DB
}

func NewServiceAssignmentRepository(db *gorm.DB) ServiceAssignmentRepository {
	return &serviceAssignmentRepository{db: db}
}

func (r *serviceAssignmentRepository) FindByVenueID(ctx context.Context, venueID string) ([]model.VenueService, error) {
	var assignments []model.VenueService
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("venue_id = ?", venueID).
		Order("created_at ASC").
		Find(&assignments).Error
	if err != nil {
		logger.Error("Failed to find venue services", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return nil, err
	}
	return assignments, nil
}

// ReplaceForVenue deletes every assignment of the venue and inserts the given set in one
// statement, all inside a single transaction. An empty set leaves the venue with no services.
func (r *serviceAssignmentRepository) ReplaceForVenue(ctx context.Context, venueID string, assignments []model.VenueService) error {
	logger.Debug("Replacing venue services", map[string]interface{}{
		"venue_id": venueID,
		"count":    len(assignments),
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", venueID).Delete(&model.VenueService{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		for i := range assignments {
			assignments[i].VenueID = venueID
		}
		return tx.Omit("Service").Create(&assignments).Error
	})
	if err != nil {
		logger.Error("Failed to replace venue services", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return err
	}

	logger.Debug("Venue services replaced", map[string]interface{}{
		"venue_id": venueID,
		"count":    len(assignments),
	})
	return nil
}
