package service

import (
	"context"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
)

type LocationService interface {
	ListProvinces(ctx context.Context) ([]model.Province, error)
	ListDistricts(ctx context.Context, provinceID uint) ([]model.District, error)
	ListVenueCategories(ctx context.Context) ([]model.VenueCategory, error)
	ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) ListProvinces(ctx context.Context) ([]model.Province, error) {
	provinces, err := s.repo.ListProvinces(ctx)
	if err != nil {
		return nil, storeError("list provinces", err, nil)
	}
	return provinces, nil
}

func (s *locationService) ListDistricts(ctx context.Context, provinceID uint) ([]model.District, error) {
	districts, err := s.repo.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, storeError("list districts", err, nil)
	}
	return districts, nil
}

func (s *locationService) ListVenueCategories(ctx context.Context) ([]model.VenueCategory, error) {
	categories, err := s.repo.ListVenueCategories(ctx)
	if err != nil {
		return nil, storeError("list venue categories", err, nil)
	}
	return categories, nil
}

func (s *locationService) ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	categories, err := s.repo.ListServiceCategories(ctx)
	if err != nil {
		return nil, storeError("list service categories", err, nil)
	}
	return categories, nil
}
