package repository

import (
	"context"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
)

type SpecialistRepository interface {
	FindByVenueID(ctx context.Context, venueID string) ([]model.Specialist, error)
	Create(ctx context.Context, specialist *model.Specialist) error
	Update(ctx context.Context, specialist *model.Specialist) error
	DeleteByIDs(ctx context.Context, venueID string, ids []string) error
}

type specialistRepository struct {
	db *gorm.DB
}

func NewSpecialistRepository(db *gorm.DB) SpecialistRepository {
	return &specialistRepository{db: db}
}

func (r *specialistRepository) FindByVenueID(ctx context.Context, venueID string) ([]model.Specialist, error) {
	var specialists []model.Specialist
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("created_at ASC").
		Find(&specialists).Error
	if err != nil {
		logger.Error("Failed to find specialists", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return nil, err
	}
	return specialists, nil
}

func (r *specialistRepository) Create(ctx context.Context, specialist *model.Specialist) error {
	if err := r.db.WithContext(ctx).Create(specialist).Error; err != nil {
		logger.Error("Failed to create specialist", err, map[string]interface{}{
			"venue_id": specialist.VenueID,
			"name":     specialist.Name,
		})
		return err
	}
	return nil
}

// Update writes the editable columns of an existing specialist. The row must belong to
// specialist.VenueID; otherwise gorm.ErrRecordNotFound is returned.
func (r *specialistRepository) Update(ctx context.Context, specialist *model.Specialist) error {
	result := r.db.WithContext(ctx).
		Model(&model.Specialist{}).
		Where("id = ? AND venue_id = ?", specialist.ID, specialist.VenueID).
		Updates(map[string]interface{}{
			"name":      specialist.Name,
			"title":     specialist.Title,
			"bio":       specialist.Bio,
			"image_url": specialist.ImageURL,
			"is_active": specialist.IsActive,
		})
	if result.Error != nil {
		logger.Error("Failed to update specialist", result.Error, map[string]interface{}{
			"specialist_id": specialist.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *specialistRepository) DeleteByIDs(ctx context.Context, venueID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	logger.Debug("Deleting specialists", map[string]interface{}{
		"venue_id": venueID,
		"count":    len(ids),
	})

	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id IN ?", venueID, ids).
		Delete(&model.Specialist{}).Error
	if err != nil {
		logger.Error("Failed to delete specialists", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return err
	}
	return nil
}
