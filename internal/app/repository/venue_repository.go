package repository

import (
	"context"
	"strings"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueFilter struct {
	Search string
	Page   int
	Limit  int
}

type VenueListResult struct {
	Venues     []model.Venue
	TotalCount int64
}

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	Update(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Venue, error)
	FindDetails(ctx context.Context, id string) (*model.Venue, error)
	FindAll(ctx context.Context, filter VenueFilter) (*VenueListResult, error)
	UpdateDerivedImages(ctx context.Context, venueID string, imageURL *string, heroImages model.StringList) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *model.Venue) error {
	logger.Debug("Creating venue in database", map[string]interface{}{
		"name":        venue.Name,
		"category_id": venue.CategoryID,
		"province_id": venue.ProvinceID,
	})

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(venue).Error; err != nil {
		logger.Error("Failed to create venue in database", err, map[string]interface{}{
			"name": venue.Name,
		})
		return err
	}

	logger.Debug("Venue created in database", map[string]interface{}{
		"venue_id": venue.ID,
	})
	return nil
}

// Update overwrites every root column except identity, creation time and the photo-derived
// image fields.
func (r *venueRepository) Update(ctx context.Context, venue *model.Venue) error {
	logger.Debug("Updating venue in database", map[string]interface{}{
		"venue_id": venue.ID,
		"name":     venue.Name,
	})

	result := r.db.WithContext(ctx).
		Model(venue).
		Select("*").
		Omit("id", "created_at", "image_url", "hero_images", clause.Associations).
		Updates(venue)
	if result.Error != nil {
		logger.Error("Failed to update venue in database", result.Error, map[string]interface{}{
			"venue_id": venue.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Venue updated in database", map[string]interface{}{
		"venue_id": venue.ID,
	})
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	logger.Debug("Deleting venue from database", map[string]interface{}{
		"venue_id": id,
	})

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Venue{})
	if result.Error != nil {
		logger.Error("Failed to delete venue from database", result.Error, map[string]interface{}{
			"venue_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Venue deleted from database", map[string]interface{}{
		"venue_id": id,
	})
	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	var venue model.Venue
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Province").
		Preload("District").
		Where("id = ?", id).
		First(&venue).Error
	if err != nil {
		logger.Debug("Venue lookup failed", map[string]interface{}{
			"venue_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}
	return &venue, nil
}

// FindDetails loads the venue with every related collection used by the public details view.
func (r *venueRepository) FindDetails(ctx context.Context, id string) (*model.Venue, error) {
	var venue model.Venue
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Province").
		Preload("District").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Specialists", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Subscription").
		Preload("Campaigns", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("VenueServices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("VenueServices.Service").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&venue).Error
	if err != nil {
		logger.Error("Failed to load venue details", err, map[string]interface{}{
			"venue_id": id,
		})
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, filter VenueFilter) (*VenueListResult, error) {
	logger.Debug("Finding venues", map[string]interface{}{
		"search": filter.Search,
		"page":   filter.Page,
		"limit":  filter.Limit,
	})

	query := r.db.WithContext(ctx).Model(&model.Venue{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count venues", err)
		return nil, err
	}

	var venues []model.Venue
	err := query.
		Preload("Category").
		Preload("Province").
		Preload("District").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&venues).Error
	if err != nil {
		logger.Error("Failed to find venues", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Venues found", map[string]interface{}{
		"count": len(venues),
		"total": total,
	})
	return &VenueListResult{Venues: venues, TotalCount: total}, nil
}

func (r *venueRepository) UpdateDerivedImages(ctx context.Context, venueID string, imageURL *string, heroImages model.StringList) error {
	if heroImages == nil {
		heroImages = model.StringList{}
	}

	result := r.db.WithContext(ctx).
		Model(&model.Venue{}).
		Where("id = ?", venueID).
		Updates(map[string]interface{}{
			"image_url":   imageURL,
			"hero_images": heroImages,
		})
	if result.Error != nil {
		logger.Error("Failed to refresh venue images", result.Error, map[string]interface{}{
			"venue_id": venueID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
