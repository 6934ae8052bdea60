package repository

import (
	"context"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	FindByVenueID(ctx context.Context, venueID string) ([]model.VenuePhoto, error)
	Create(ctx context.Context, photo *model.VenuePhoto) error
	Update(ctx context.Context, photo *model.VenuePhoto) error
	DeleteByIDs(ctx context.Context, venueID string, ids []string) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) FindByVenueID(ctx context.Context, venueID string) ([]model.VenuePhoto, error) {
	var photos []model.VenuePhoto
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("sort_order ASC").
		Find(&photos).Error
	if err != nil {
		logger.Error("Failed to find venue photos", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *model.VenuePhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		logger.Error("Failed to create venue photo", err, map[string]interface{}{
			"venue_id": photo.VenueID,
			"url":      photo.URL,
		})
		return err
	}
	return nil
}

// Update rewrites url, position, hero flag and category. Zero values are written as-is so
// that a photo moved off index 0 loses its hero flag.
func (r *photoRepository) Update(ctx context.Context, photo *model.VenuePhoto) error {
	result := r.db.WithContext(ctx).
		Model(&model.VenuePhoto{}).
		Where("id = ? AND venue_id = ?", photo.ID, photo.VenueID).
		Updates(map[string]interface{}{
			"url":           photo.URL,
			"sort_order":    photo.SortOrder,
			"is_hero_image": photo.IsHeroImage,
			"category":      photo.Category,
		})
	if result.Error != nil {
		logger.Error("Failed to update venue photo", result.Error, map[string]interface{}{
			"photo_id": photo.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *photoRepository) DeleteByIDs(ctx context.Context, venueID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	logger.Debug("Deleting venue photos", map[string]interface{}{
		"venue_id": venueID,
		"count":    len(ids),
	})

	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id IN ?", venueID, ids).
		Delete(&model.VenuePhoto{}).Error
	if err != nil {
		logger.Error("Failed to delete venue photos", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return err
	}
	return nil
}
