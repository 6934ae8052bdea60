package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/db"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/emx/guzellikharitam-backend/internal/storage"
	"github.com/emx/guzellikharitam-backend/pkg/push/fcm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testCategoryID = "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e01"
	testHaircutID  = "a1c9e2d4-0b3f-4f6a-8e7d-100000000001"
	testManicureID = "a1c9e2d4-0b3f-4f6a-8e7d-200000000001"
	unknownID      = "00000000-0000-4000-8000-000000000000"
)

type fakeObjectStorage struct {
	uploadErr error
	keys      []string
}

func (f *fakeObjectStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjectStorage) PresignUpload(ctx context.Context, folder, filename, contentType string) (*storage.PresignedURLResponse, error) {
	key := storage.ObjectKey(folder, filename)
	return &storage.PresignedURLResponse{
		UploadURL: "https://upload.example.com/" + key,
		FileURL:   "https://cdn.example.com/" + key,
		Key:       key,
	}, nil
}

type fakePushSender struct {
	resp *fcm.Response
	err  error
	sent []fcm.Message
}

func (f *fakePushSender) Send(ctx context.Context, msg fcm.Message) (*fcm.Response, error) {
	f.sent = append(f.sent, msg)
	return f.resp, f.err
}

type controllerTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	objects *fakeObjectStorage
}

// setupControllerTest wires every controller against a fresh sqlite database without auth.
func setupControllerTest(t *testing.T, sender service.PushSender) *controllerTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	venueRepo := repository.NewVenueRepository(testDB)
	subscriptionRepo := repository.NewSubscriptionRepository(testDB)
	m := metrics.New()

	venueService := service.NewVenueService(
		venueRepo,
		repository.NewServiceAssignmentRepository(testDB),
		repository.NewSpecialistRepository(testDB),
		repository.NewPhotoRepository(testDB),
		subscriptionRepo,
		nil,
		m,
	)
	objects := &fakeObjectStorage{}

	venueController := NewVenueController(venueService)
	detailController := NewVenueDetailController(service.NewVenueDetailService(venueRepo, nil))
	locationController := NewLocationController(service.NewLocationService(repository.NewLocationRepository(testDB)))
	uploadController := NewUploadController(service.NewUploadService(objects, venueRepo, 1024, m))
	subscriptionController := NewSubscriptionController(service.NewSubscriptionService(venueRepo, subscriptionRepo, nil))
	reviewController := NewReviewController(service.NewReviewService(repository.NewReviewRepository(testDB), venueRepo, nil))
	notificationController := NewNotificationController(service.NewNotificationService(sender))

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/provinces", locationController.ListProvinces)
	router.GET("/provinces/:id/districts", locationController.ListDistricts)
	router.GET("/venue-categories", locationController.ListVenueCategories)
	router.GET("/service-categories", locationController.ListServiceCategories)

	router.GET("/venues", venueController.ListVenues)
	router.POST("/venues", venueController.CreateVenue)
	router.GET("/venues/:id", venueController.GetVenue)
	router.PUT("/venues/:id", venueController.UpdateVenue)
	router.DELETE("/venues/:id", venueController.DeleteVenue)
	router.GET("/venues/:id/services", venueController.ListServices)
	router.GET("/venues/:id/specialists", venueController.ListSpecialists)
	router.GET("/venues/:id/photos", venueController.ListPhotos)
	router.POST("/venues/:id/photos/upload", uploadController.UploadVenuePhoto)
	router.GET("/venues/:id/subscription", subscriptionController.GetSubscription)
	router.PUT("/venues/:id/subscription", subscriptionController.ChangePlan)
	router.GET("/venues/:id/reviews", reviewController.GetVenueReviews)
	router.GET("/venues/:id/campaigns", reviewController.ListCampaigns)
	router.POST("/venues/:id/campaigns", reviewController.CreateCampaign)
	router.POST("/upload/presigned-url", uploadController.GeneratePresignedURL)
	router.POST("/notifications/send", notificationController.SendPush)
	router.GET("/functions/v1/get-venue-details", detailController.GetVenueDetails)

	return &controllerTestEnv{db: testDB, router: router, objects: objects}
}

func (env *controllerTestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func venuePayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"category_id": testCategoryID,
		"province_id": 34,
		"latitude":    41.0082,
		"longitude":   28.9784,
		"working_hours": map[string]interface{}{
			"monday": map[string]interface{}{"open": "09:00", "close": "19:00", "is_open": true},
		},
	}
}

// createVenue saves a venue with one service, one specialist and two photos and returns its id.
func (env *controllerTestEnv) createVenue(t *testing.T, name string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/venues", map[string]interface{}{
		"venue":       venuePayload(name),
		"services":    []interface{}{map[string]interface{}{"service_id": testHaircutID, "price": 350, "duration_minutes": 45}},
		"specialists": []interface{}{map[string]interface{}{"name": "Ayşe", "title": "Kuaför"}},
		"photos": []interface{}{
			map[string]interface{}{"url": "https://cdn.example.com/a.jpg"},
			map[string]interface{}{"url": "https://cdn.example.com/b.jpg"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["venue_id"].(string)
}

var errGatewayDown = errors.New("gateway down")
