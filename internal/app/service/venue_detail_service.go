package service

import (
	"context"
	"encoding/json"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
)

// DetailsCache keeps the serialized details aggregate per venue. Every Invalidate starts a new
// generation; Set only lands in the generation Get reported, so a payload loaded before a
// concurrent invalidation is never served afterwards.
type DetailsCache interface {
	Get(ctx context.Context, venueID string) (payload []byte, generation uint64, ok bool, err error)
	Set(ctx context.Context, venueID string, generation uint64, payload []byte) error
	Invalidate(ctx context.Context, venueID string) error
}

type NameRef struct {
	Name string `json:"name"`
}

// VenueDetails is the public aggregate: the venue row with its children and region names.
// The outer fields shadow the association fields of the embedded venue so empty collections
// serialize as [] and regions as {"name": ...}.
type VenueDetails struct {
	*model.Venue
	Photos        []model.VenuePhoto   `json:"photos"`
	Specialists   []model.Specialist   `json:"specialists"`
	Subscription  *model.Subscription  `json:"subscription"`
	Campaigns     []model.Campaign     `json:"campaigns"`
	VenueServices []model.VenueService `json:"venue_services"`
	Reviews       []model.Review       `json:"reviews"`
	Province      *NameRef             `json:"province"`
	District      *NameRef             `json:"district"`
}

type VenueDetailService interface {
	// GetDetailsJSON returns the serialized aggregate, from cache when possible.
	GetDetailsJSON(ctx context.Context, venueID string) ([]byte, error)
	GetDetails(ctx context.Context, venueID string) (*VenueDetails, error)
}

type venueDetailService struct {
	venueRepo repository.VenueRepository
	cache     DetailsCache
}

func NewVenueDetailService(venueRepo repository.VenueRepository, cache DetailsCache) VenueDetailService {
	return &venueDetailService{venueRepo: venueRepo, cache: cache}
}

func (s *venueDetailService) GetDetails(ctx context.Context, venueID string) (*VenueDetails, error) {
	venue, err := s.venueRepo.FindDetails(ctx, venueID)
	if err != nil {
		return nil, storeError("load venue details", err, ErrVenueNotFound)
	}
	return newVenueDetails(venue), nil
}

func (s *venueDetailService) GetDetailsJSON(ctx context.Context, venueID string) ([]byte, error) {
	var generation uint64
	cacheable := false
	if s.cache != nil {
		payload, gen, ok, err := s.cache.Get(ctx, venueID)
		if err == nil && ok {
			logger.Debug("Venue details served from cache", map[string]interface{}{
				"venue_id": venueID,
			})
			return payload, nil
		}
		generation, cacheable = gen, err == nil
	}

	details, err := s.GetDetails(ctx, venueID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, venueID, generation, payload); err != nil {
			logger.Warn("Failed to cache venue details", map[string]interface{}{
				"venue_id": venueID,
				"error":    err.Error(),
			})
		}
	}
	return payload, nil
}

func newVenueDetails(venue *model.Venue) *VenueDetails {
	details := &VenueDetails{
		Venue:         venue,
		Photos:        nonNil(venue.Photos),
		Specialists:   nonNil(venue.Specialists),
		Subscription:  venue.Subscription,
		Campaigns:     nonNil(venue.Campaigns),
		VenueServices: nonNil(venue.VenueServices),
		Reviews:       nonNil(venue.Reviews),
	}
	if venue.Province != nil {
		details.Province = &NameRef{Name: venue.Province.Name}
	}
	if venue.District != nil {
		details.District = &NameRef{Name: venue.District.Name}
	}
	return details
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
