package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	defaultVenuePageSize = 20
	maxVenuePageSize     = 100
)

type VenueListOptions struct {
	Search   string
	Page     int
	PageSize int
}

// VenueService is the venue aggregate writer plus the admin reads around it.
type VenueService interface {
	SaveVenue(ctx context.Context, req SaveVenueRequest) (*SaveVenueResult, error)
	UpsertVenue(ctx context.Context, in VenueInput) (*model.Venue, error)
	ReplaceServices(ctx context.Context, venueID string, services []ServiceAssignmentInput) error
	ReconcileSpecialists(ctx context.Context, venueID string, specialists []SpecialistInput) ([]model.Specialist, error)
	ReconcilePhotos(ctx context.Context, venueID string, photos []PhotoInput) ([]model.VenuePhoto, error)

	ListVenues(ctx context.Context, opts VenueListOptions) (*repository.VenueListResult, error)
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	ListServices(ctx context.Context, venueID string) ([]model.VenueService, error)
	ListSpecialists(ctx context.Context, venueID string) ([]model.Specialist, error)
	ListPhotos(ctx context.Context, venueID string) ([]model.VenuePhoto, error)
}

type venueService struct {
	venueRepo        repository.VenueRepository
	assignmentRepo   repository.ServiceAssignmentRepository
	specialistRepo   repository.SpecialistRepository
	photoRepo        repository.PhotoRepository
	subscriptionRepo repository.SubscriptionRepository
	cache            DetailsCache
	metrics          *metrics.Metrics
}

// NewVenueService wires the writer. cache and m may be nil.
func NewVenueService(
	venueRepo repository.VenueRepository,
	assignmentRepo repository.ServiceAssignmentRepository,
	specialistRepo repository.SpecialistRepository,
	photoRepo repository.PhotoRepository,
	subscriptionRepo repository.SubscriptionRepository,
	cache DetailsCache,
	m *metrics.Metrics,
) VenueService {
	return &venueService{
		venueRepo:        venueRepo,
		assignmentRepo:   assignmentRepo,
		specialistRepo:   specialistRepo,
		photoRepo:        photoRepo,
		subscriptionRepo: subscriptionRepo,
		cache:            cache,
		metrics:          m,
	}
}

// SaveVenue upserts the root and then reconciles services, specialists and photos concurrently.
// A failure after the root write still returns the result so the caller knows the venue id;
// completed steps are not rolled back and the whole save can be re-run.
func (s *venueService) SaveVenue(ctx context.Context, req SaveVenueRequest) (*SaveVenueResult, error) {
	logger.Info("Saving venue", map[string]interface{}{
		"venue_id":    req.Venue.ID,
		"name":        req.Venue.Name,
		"services":    len(req.Services),
		"specialists": len(req.Specialists),
		"photos":      len(req.Photos),
	})

	if err := ValidateSaveRequest(req); err != nil {
		logger.Warn("Venue save rejected", map[string]interface{}{
			"venue_id": req.Venue.ID,
			"error":    err.Error(),
		})
		s.metrics.ObserveSave(metrics.OutcomeValidation)
		return nil, err
	}

	venue := req.Venue.toModel()
	venue.ExpertTeam = expertTeam(req.Specialists)

	saved, err := s.upsert(ctx, venue)
	if err != nil {
		s.metrics.ObserveSave(outcomeOf(err))
		return nil, err
	}
	result := &SaveVenueResult{VenueID: saved.ID, Created: req.Venue.ID == ""}

	if result.Created {
		if err := s.startSubscription(ctx, saved.ID, req.Plan); err != nil {
			s.metrics.ObserveSave(outcomeOf(err))
			return result, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		err := s.ReplaceServices(gctx, saved.ID, req.Services)
		s.metrics.ObserveReconcile("services", outcomeOf(err), time.Since(start))
		return err
	})
	g.Go(func() error {
		start := time.Now()
		_, err := s.ReconcileSpecialists(gctx, saved.ID, req.Specialists)
		s.metrics.ObserveReconcile("specialists", outcomeOf(err), time.Since(start))
		return err
	})
	g.Go(func() error {
		start := time.Now()
		_, err := s.ReconcilePhotos(gctx, saved.ID, req.Photos)
		s.metrics.ObserveReconcile("photos", outcomeOf(err), time.Since(start))
		return err
	})
	err = g.Wait()

	s.invalidateDetails(ctx, saved.ID)

	if err != nil {
		logger.Error("Venue saved partially", err, map[string]interface{}{
			"venue_id": saved.ID,
		})
		s.metrics.ObserveSave(outcomeOf(err))
		return result, err
	}

	reloaded, err := s.venueRepo.FindByID(ctx, saved.ID)
	if err != nil {
		s.metrics.ObserveSave(metrics.OutcomeStore)
		return result, storeError("load venue", err, ErrVenueNotFound)
	}
	result.Venue = reloaded

	s.metrics.ObserveSave(metrics.OutcomeSuccess)
	logger.Info("Venue saved", map[string]interface{}{
		"venue_id": saved.ID,
		"created":  result.Created,
	})
	return result, nil
}

// UpsertVenue writes only the root record. The expert team is left empty; SaveVenue derives it.
func (s *venueService) UpsertVenue(ctx context.Context, in VenueInput) (*model.Venue, error) {
	if err := ValidateVenue(in); err != nil {
		return nil, err
	}
	saved, err := s.upsert(ctx, in.toModel())
	if err != nil {
		return nil, err
	}
	s.invalidateDetails(ctx, saved.ID)
	return saved, nil
}

func (s *venueService) upsert(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.ID == "" {
		if err := s.venueRepo.Create(ctx, venue); err != nil {
			return nil, storeError("create venue", err, nil)
		}
	} else {
		if err := s.venueRepo.Update(ctx, venue); err != nil {
			return nil, storeError("update venue", err, ErrVenueNotFound)
		}
	}

	saved, err := s.venueRepo.FindByID(ctx, venue.ID)
	if err != nil {
		return nil, storeError("load venue", err, ErrVenueNotFound)
	}
	return saved, nil
}

func (s *venueService) startSubscription(ctx context.Context, venueID string, plan model.SubscriptionPlan) error {
	if plan == "" {
		plan = model.PlanFree
	}
	subscription := &model.Subscription{
		VenueID:  venueID,
		PlanID:   plan,
		IsActive: true,
		StartsAt: time.Now(),
	}
	if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return storeError("create subscription", err, nil)
	}
	return nil
}

// ReplaceServices swaps the venue's whole service list in one transaction. An empty list clears it.
func (s *venueService) ReplaceServices(ctx context.Context, venueID string, services []ServiceAssignmentInput) error {
	verr := &ValidationError{}
	validateServicesInto(verr, services)
	if err := verr.orNil(); err != nil {
		return err
	}

	assignments := make([]model.VenueService, 0, len(services))
	for _, svc := range services {
		assignments = append(assignments, model.VenueService{
			VenueID:         venueID,
			ServiceID:       svc.ServiceID,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
			IsActive:        boolOrTrue(svc.IsActive),
		})
	}

	if err := s.assignmentRepo.ReplaceForVenue(ctx, venueID, assignments); err != nil {
		return storeError("replace venue services", err, nil)
	}
	return nil
}

// ReconcileSpecialists deletes stored specialists missing from the list, updates the ones that
// carry an id and inserts the rest. Ids of retained rows never change.
func (s *venueService) ReconcileSpecialists(ctx context.Context, venueID string, specialists []SpecialistInput) ([]model.Specialist, error) {
	verr := &ValidationError{}
	validateSpecialistsInto(verr, specialists)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	stored, err := s.specialistRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("load specialists", err, nil)
	}

	storedIDs := make(map[string]bool, len(stored))
	for _, sp := range stored {
		storedIDs[sp.ID] = true
	}
	keep := make(map[string]bool, len(specialists))
	for _, sp := range specialists {
		if sp.ID == "" {
			continue
		}
		if !storedIDs[sp.ID] {
			return nil, &StoreError{Op: "update specialist", Err: fmt.Errorf("%w: %s", ErrSpecialistNotFound, sp.ID)}
		}
		keep[sp.ID] = true
	}

	var toDelete []string
	for _, sp := range stored {
		if !keep[sp.ID] {
			toDelete = append(toDelete, sp.ID)
		}
	}
	if err := s.specialistRepo.DeleteByIDs(ctx, venueID, toDelete); err != nil {
		return nil, storeError("delete specialists", err, nil)
	}

	saved := make([]model.Specialist, 0, len(specialists))
	for _, in := range specialists {
		row := model.Specialist{
			ID:       in.ID,
			VenueID:  venueID,
			Name:     in.Name,
			Title:    in.Title,
			Bio:      in.Bio,
			ImageURL: in.ImageURL,
			IsActive: boolOrTrue(in.IsActive),
		}
		if row.ID != "" {
			if err := s.specialistRepo.Update(ctx, &row); err != nil {
				return nil, storeError("update specialist", err, ErrSpecialistNotFound)
			}
		} else {
			if err := s.specialistRepo.Create(ctx, &row); err != nil {
				return nil, storeError("create specialist", err, nil)
			}
		}
		saved = append(saved, row)
	}

	logger.Debug("Specialists reconciled", map[string]interface{}{
		"venue_id": venueID,
		"deleted":  len(toDelete),
		"saved":    len(saved),
	})
	return saved, nil
}

// ReconcilePhotos diffs photos like specialists, rewrites sort_order and the hero flag from the
// submitted order, then refreshes the venue's image_url and hero_images.
func (s *venueService) ReconcilePhotos(ctx context.Context, venueID string, photos []PhotoInput) ([]model.VenuePhoto, error) {
	verr := &ValidationError{}
	validatePhotosInto(verr, photos)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	stored, err := s.photoRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("load photos", err, nil)
	}

	storedIDs := make(map[string]bool, len(stored))
	for _, p := range stored {
		storedIDs[p.ID] = true
	}
	keep := make(map[string]bool, len(photos))
	for _, p := range photos {
		if p.ID == "" {
			continue
		}
		if !storedIDs[p.ID] {
			return nil, &StoreError{Op: "update photo", Err: fmt.Errorf("%w: %s", ErrPhotoNotFound, p.ID)}
		}
		keep[p.ID] = true
	}

	var toDelete []string
	for _, p := range stored {
		if !keep[p.ID] {
			toDelete = append(toDelete, p.ID)
		}
	}
	if err := s.photoRepo.DeleteByIDs(ctx, venueID, toDelete); err != nil {
		return nil, storeError("delete photos", err, nil)
	}

	saved := make([]model.VenuePhoto, 0, len(photos))
	for i, in := range photos {
		category := in.Category
		if category == "" {
			category = model.DefaultPhotoCategory
		}
		row := model.VenuePhoto{
			ID:          in.ID,
			VenueID:     venueID,
			URL:         in.URL,
			SortOrder:   i,
			IsHeroImage: i == 0,
			Category:    category,
		}
		if row.ID != "" {
			if err := s.photoRepo.Update(ctx, &row); err != nil {
				return nil, storeError("update photo", err, ErrPhotoNotFound)
			}
		} else {
			if err := s.photoRepo.Create(ctx, &row); err != nil {
				return nil, storeError("create photo", err, nil)
			}
		}
		saved = append(saved, row)
	}

	var primary *string
	if len(saved) > 0 {
		url := saved[0].URL
		primary = &url
	}
	if err := s.venueRepo.UpdateDerivedImages(ctx, venueID, primary, model.HeroImageURLs(saved)); err != nil {
		return nil, storeError("refresh venue images", err, ErrVenueNotFound)
	}

	logger.Debug("Photos reconciled", map[string]interface{}{
		"venue_id": venueID,
		"deleted":  len(toDelete),
		"saved":    len(saved),
	})
	return saved, nil
}

func (s *venueService) ListVenues(ctx context.Context, opts VenueListOptions) (*repository.VenueListResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = defaultVenuePageSize
	}
	if size > maxVenuePageSize {
		size = maxVenuePageSize
	}

	result, err := s.venueRepo.FindAll(ctx, repository.VenueFilter{
		Search: opts.Search,
		Page:   page,
		Limit:  size,
	})
	if err != nil {
		return nil, storeError("list venues", err, nil)
	}
	return result, nil
}

func (s *venueService) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("load venue", err, ErrVenueNotFound)
	}
	return venue, nil
}

// DeleteVenue removes the root row; the store cascades to every child table.
func (s *venueService) DeleteVenue(ctx context.Context, id string) error {
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return storeError("delete venue", err, ErrVenueNotFound)
	}
	s.invalidateDetails(ctx, id)
	logger.Info("Venue deleted", map[string]interface{}{
		"venue_id": id,
	})
	return nil
}

func (s *venueService) ListServices(ctx context.Context, venueID string) ([]model.VenueService, error) {
	services, err := s.assignmentRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("list venue services", err, nil)
	}
	return services, nil
}

func (s *venueService) ListSpecialists(ctx context.Context, venueID string) ([]model.Specialist, error) {
	specialists, err := s.specialistRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("list specialists", err, nil)
	}
	return specialists, nil
}

func (s *venueService) ListPhotos(ctx context.Context, venueID string) ([]model.VenuePhoto, error) {
	photos, err := s.photoRepo.FindByVenueID(ctx, venueID)
	if err != nil {
		return nil, storeError("list photos", err, nil)
	}
	return photos, nil
}

func (s *venueService) invalidateDetails(ctx context.Context, venueID string) {
	if s.cache == nil {
		return
	}
	// The save has already happened; a stale cache entry expires on its TTL.
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), venueID); err != nil {
		logger.Warn("Failed to invalidate venue details cache", map[string]interface{}{
			"venue_id": venueID,
			"error":    err.Error(),
		})
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	var verr *ValidationError
	var serr *StoreError
	var uerr *UploadError
	switch {
	case errors.As(err, &verr):
		return metrics.OutcomeValidation
	case errors.As(err, &serr):
		return metrics.OutcomeStore
	case errors.As(err, &uerr):
		return metrics.OutcomeUpload
	}
	return metrics.OutcomeError
}
