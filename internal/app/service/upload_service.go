package service

import (
	"context"
	"fmt"
	"io"

	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/emx/guzellikharitam-backend/internal/storage"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
)

const venuePhotoFolder = "venue-photos"

// ObjectStorage is the upload-by-path collaborator.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PresignUpload(ctx context.Context, folder, filename, contentType string) (*storage.PresignedURLResponse, error)
}

type PhotoUpload struct {
	VenueID     string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	// UploadVenuePhoto stores the file and returns its public URL. It does not touch venue_photos;
	// the URL is persisted by the next aggregate save.
	UploadVenuePhoto(ctx context.Context, upload PhotoUpload) (string, error)
	PresignVenuePhoto(ctx context.Context, venueID, filename, contentType string) (*storage.PresignedURLResponse, error)
}

type uploadService struct {
	storage   ObjectStorage
	venueRepo repository.VenueRepository
	maxBytes  int64
	metrics   *metrics.Metrics
}

func NewUploadService(objectStorage ObjectStorage, venueRepo repository.VenueRepository, maxBytes int64, m *metrics.Metrics) UploadService {
	return &uploadService{
		storage:   objectStorage,
		venueRepo: venueRepo,
		maxBytes:  maxBytes,
		metrics:   m,
	}
}

func (s *uploadService) UploadVenuePhoto(ctx context.Context, upload PhotoUpload) (string, error) {
	if err := s.validate(upload.ContentType, upload.Size); err != nil {
		return "", err
	}
	if _, err := s.venueRepo.FindByID(ctx, upload.VenueID); err != nil {
		return "", storeError("load venue", err, ErrVenueNotFound)
	}

	key := storage.ObjectKey(venuePhotoFolder+"/"+upload.VenueID, upload.Filename)
	url, err := s.storage.Upload(ctx, key, upload.Body, upload.ContentType)
	if err != nil {
		s.metrics.ObserveUpload(metrics.OutcomeUpload)
		logger.Error("Failed to upload venue photo", err, map[string]interface{}{
			"venue_id": upload.VenueID,
			"key":      key,
		})
		return "", &UploadError{Path: key, Err: err}
	}

	s.metrics.ObserveUpload(metrics.OutcomeSuccess)
	logger.Info("Venue photo uploaded", map[string]interface{}{
		"venue_id": upload.VenueID,
		"key":      key,
		"size":     upload.Size,
	})
	return url, nil
}

func (s *uploadService) PresignVenuePhoto(ctx context.Context, venueID, filename, contentType string) (*storage.PresignedURLResponse, error) {
	if err := s.validate(contentType, 0); err != nil {
		return nil, err
	}

	folder := venuePhotoFolder + "/" + venueID
	resp, err := s.storage.PresignUpload(ctx, folder, filename, contentType)
	if err != nil {
		return nil, &UploadError{Path: folder, Err: err}
	}
	return resp, nil
}

func (s *uploadService) validate(contentType string, size int64) error {
	verr := &ValidationError{}
	if err := storage.ValidateContentType(contentType, storage.ImageContentTypes); err != nil {
		verr.add("content_type", err.Error())
	}
	if s.maxBytes > 0 {
		if err := storage.ValidateFileSize(size, s.maxBytes); err != nil {
			verr.add("file", fmt.Sprintf("must not exceed %d bytes", s.maxBytes))
		}
	}
	return verr.orNil()
}
