package service

import (
	"context"
	"strings"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
)

type ReviewPage struct {
	Reviews       []model.Review `json:"reviews"`
	Total         int64          `json:"total"`
	AverageRating float64        `json:"average_rating"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

type CampaignInput struct {
	Title           string
	Description     string
	DiscountPercent int
	StartsAt        *time.Time
	EndsAt          *time.Time
}

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	venueRepo  repository.VenueRepository
	cache      DetailsCache
}

func NewReviewService(reviewRepo *repository.ReviewRepository, venueRepo repository.VenueRepository, cache DetailsCache) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		venueRepo:  venueRepo,
		cache:      cache,
	}
}

// GetVenueReviews returns one page of reviews, newest first.
func (s *ReviewService) GetVenueReviews(ctx context.Context, venueID string, page, pageSize int) (*ReviewPage, error) {
	if _, err := s.venueRepo.FindByID(ctx, venueID); err != nil {
		return nil, storeError("load venue", err, ErrVenueNotFound)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	reviews, total, err := s.reviewRepo.GetReviewsByVenueID(ctx, venueID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storeError("list reviews", err, nil)
	}
	avg, err := s.reviewRepo.GetAverageRating(ctx, venueID)
	if err != nil {
		return nil, storeError("average rating", err, nil)
	}

	return &ReviewPage{
		Reviews:       nonNil(reviews),
		Total:         total,
		AverageRating: avg,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// CreateCampaign adds an active campaign to the venue.
func (s *ReviewService) CreateCampaign(ctx context.Context, venueID string, input CampaignInput) (*model.Campaign, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		verr.add("title", "is required")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		verr.add("discount_percent", "must be between 0 and 100")
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		verr.add("ends_at", "must not be before starts_at")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if _, err := s.venueRepo.FindByID(ctx, venueID); err != nil {
		return nil, storeError("load venue", err, ErrVenueNotFound)
	}

	campaign := &model.Campaign{
		VenueID:         venueID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		IsActive:        true,
	}
	if err := s.reviewRepo.CreateCampaign(ctx, campaign); err != nil {
		return nil, storeError("create campaign", err, nil)
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, venueID)
	}
	return campaign, nil
}

func (s *ReviewService) GetActiveCampaigns(ctx context.Context, venueID string) ([]model.Campaign, error) {
	campaigns, err := s.reviewRepo.GetActiveCampaigns(ctx, venueID)
	if err != nil {
		return nil, storeError("list campaigns", err, nil)
	}
	return nonNil(campaigns), nil
}
