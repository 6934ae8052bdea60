package repository

import (
	"context"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"gorm.io/gorm"
)

// LocationRepository serves the read-only lookup tables seeded at migration.
type LocationRepository interface {
	ListProvinces(ctx context.Context) ([]model.Province, error)
	ListDistricts(ctx context.Context, provinceID uint) ([]model.District, error)
	ListVenueCategories(ctx context.Context) ([]model.VenueCategory, error)
	ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error)
	FindProvinceByName(ctx context.Context, name string) (*model.Province, error)
	FindDistrictByName(ctx context.Context, provinceID uint, name string) (*model.District, error)
	FindVenueCategoryByName(ctx context.Context, name string) (*model.VenueCategory, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) ListProvinces(ctx context.Context) ([]model.Province, error) {
	var provinces []model.Province
	err := r.db.WithContext(ctx).Order("name ASC").Find(&provinces).Error
	return provinces, err
}

func (r *locationRepository) ListDistricts(ctx context.Context, provinceID uint) ([]model.District, error) {
	var districts []model.District
	err := r.db.WithContext(ctx).
		Where("province_id = ?", provinceID).
		Order("name ASC").
		Find(&districts).Error
	return districts, err
}

func (r *locationRepository) ListVenueCategories(ctx context.Context) ([]model.VenueCategory, error) {
	var categories []model.VenueCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *locationRepository) ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *locationRepository) FindProvinceByName(ctx context.Context, name string) (*model.Province, error) {
	var province model.Province
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&province).Error; err != nil {
		return nil, err
	}
	return &province, nil
}

func (r *locationRepository) FindDistrictByName(ctx context.Context, provinceID uint, name string) (*model.District, error) {
	var district model.District
	err := r.db.WithContext(ctx).
		Where("province_id = ? AND name = ?", provinceID, name).
		First(&district).Error
	if err != nil {
		return nil, err
	}
	return &district, nil
}

func (r *locationRepository) FindVenueCategoryByName(ctx context.Context, name string) (*model.VenueCategory, error) {
	var category model.VenueCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
