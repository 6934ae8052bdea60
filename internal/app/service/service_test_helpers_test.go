package service

import (
	"context"
	"sync"
	"testing"

	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/db"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testCategoryID = "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e01"
	testProvinceID = uint(34)
	testHaircutID  = "a1c9e2d4-0b3f-4f6a-8e7d-100000000001"
	testBlowDryID  = "a1c9e2d4-0b3f-4f6a-8e7d-100000000002"
	testManicureID = "a1c9e2d4-0b3f-4f6a-8e7d-200000000001"
)

type fakeDetailsCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	generations map[string]uint64
	gets        int
	invalidated []string
	// afterGet runs once the lock is released, standing in for a concurrent writer.
	afterGet func()
}

func newFakeDetailsCache() *fakeDetailsCache {
	return &fakeDetailsCache{data: make(map[string][]byte), generations: make(map[string]uint64)}
}

func (c *fakeDetailsCache) Get(ctx context.Context, venueID string) ([]byte, uint64, bool, error) {
	c.mu.Lock()
	c.gets++
	payload, ok := c.data[venueID]
	gen := c.generations[venueID]
	hook := c.afterGet
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return payload, gen, ok, nil
}

func (c *fakeDetailsCache) Set(ctx context.Context, venueID string, generation uint64, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[venueID] != generation {
		return nil
	}
	c.data[venueID] = payload
	return nil
}

func (c *fakeDetailsCache) Invalidate(ctx context.Context, venueID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, venueID)
	c.generations[venueID]++
	c.invalidated = append(c.invalidated, venueID)
	return nil
}

type venueTestEnv struct {
	db      *gorm.DB
	service VenueService
	cache   *fakeDetailsCache
	metrics *metrics.Metrics
}

func setupVenueServiceTest(t *testing.T) *venueTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cache := newFakeDetailsCache()
	m := metrics.New()
	svc := NewVenueService(
		repository.NewVenueRepository(testDB),
		repository.NewServiceAssignmentRepository(testDB),
		repository.NewSpecialistRepository(testDB),
		repository.NewPhotoRepository(testDB),
		repository.NewSubscriptionRepository(testDB),
		cache,
		m,
	)
	return &venueTestEnv{db: testDB, service: svc, cache: cache, metrics: m}
}

func baseVenueInput(name string) VenueInput {
	return VenueInput{
		Name:       name,
		CategoryID: testCategoryID,
		ProvinceID: testProvinceID,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func savesTotal(t *testing.T, m *metrics.Metrics, outcome string) float64 {
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "venue_saves_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
