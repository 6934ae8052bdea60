package db

import (
	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
)

var seedProvinces = []struct {
	ID        uint
	Name      string
	Districts []string
}{
	{ID: 6, Name: "Ankara", Districts: []string{"Çankaya", "Keçiören", "Yenimahalle"}},
	{ID: 7, Name: "Antalya", Districts: []string{"Muratpaşa", "Konyaaltı"}},
	{ID: 16, Name: "Bursa", Districts: []string{"Nilüfer", "Osmangazi"}},
	{ID: 34, Name: "İstanbul", Districts: []string{"Beşiktaş", "Kadıköy", "Şişli", "Üsküdar"}},
	{ID: 35, Name: "İzmir", Districts: []string{"Karşıyaka", "Konak", "Bornova"}},
}

var seedVenueCategories = []model.VenueCategory{
	{ID: "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e01", Name: "Güzellik Salonu", Slug: "guzellik-salonu", IsActive: true},
	{ID: "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e02", Name: "Kuaför", Slug: "kuafor", IsActive: true},
	{ID: "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e03", Name: "Spa & Masaj", Slug: "spa-masaj", IsActive: true},
	{ID: "6f0b7a3e-5c1d-4c8e-9b0a-0a1d2c3b4e04", Name: "Tırnak Stüdyosu", Slug: "tirnak-studyosu", IsActive: true},
}

var seedServiceCatalog = []struct {
	Category model.ServiceCategory
	Services []model.Service
}{
	{
		Category: model.ServiceCategory{ID: "a1c9e2d4-0b3f-4f6a-8e7d-10000000000a", Name: "Saç"},
		Services: []model.Service{
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-100000000001", Name: "Saç Kesimi", DefaultDurationMinutes: 45},
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-100000000002", Name: "Fön", DefaultDurationMinutes: 30},
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-100000000003", Name: "Boya", DefaultDurationMinutes: 120},
		},
	},
	{
		Category: model.ServiceCategory{ID: "a1c9e2d4-0b3f-4f6a-8e7d-20000000000a", Name: "Tırnak"},
		Services: []model.Service{
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-200000000001", Name: "Manikür", DefaultDurationMinutes: 40},
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-200000000002", Name: "Pedikür", DefaultDurationMinutes: 50},
		},
	},
	{
		Category: model.ServiceCategory{ID: "a1c9e2d4-0b3f-4f6a-8e7d-30000000000a", Name: "Cilt Bakımı"},
		Services: []model.Service{
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-300000000001", Name: "Klasik Cilt Bakımı", DefaultDurationMinutes: 60},
			{ID: "a1c9e2d4-0b3f-4f6a-8e7d-300000000002", Name: "Lazer Epilasyon", DefaultDurationMinutes: 30},
		},
	},
}

// SeedLookups inserts provinces, districts, venue categories and the service catalog when
// their tables are empty.
func SeedLookups(conn *gorm.DB) error {
	logger.Info("Seeding lookup data...")

	steps := []struct {
		name  string
		model interface{}
		seed  func(tx *gorm.DB) error
	}{
		{"provinces", &model.Province{}, seedLocations},
		{"venue_categories", &model.VenueCategory{}, seedCategories},
		{"service_categories", &model.ServiceCategory{}, seedCatalog},
	}

	for _, step := range steps {
		var count int64
		if err := conn.Model(step.model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Lookup table already seeded, skipping...", map[string]interface{}{
				"table":          step.name,
				"existing_count": count,
			})
			continue
		}
		if err := conn.Transaction(step.seed); err != nil {
			logger.Error("Failed to seed lookup table", err, map[string]interface{}{
				"table": step.name,
			})
			return err
		}
	}

	logger.Info("Lookup data seeded successfully")
	return nil
}

func seedLocations(tx *gorm.DB) error {
	for _, p := range seedProvinces {
		province := model.Province{ID: p.ID, Name: p.Name}
		for _, d := range p.Districts {
			province.Districts = append(province.Districts, model.District{Name: d})
		}
		if err := tx.Create(&province).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(tx *gorm.DB) error {
	categories := make([]model.VenueCategory, len(seedVenueCategories))
	copy(categories, seedVenueCategories)
	return tx.Create(&categories).Error
}

func seedCatalog(tx *gorm.DB) error {
	for _, entry := range seedServiceCatalog {
		category := entry.Category
		category.Services = make([]model.Service, len(entry.Services))
		copy(category.Services, entry.Services)
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
