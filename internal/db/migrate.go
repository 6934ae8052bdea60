package db

import (
	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Province{},
		&model.District{},
		&model.VenueCategory{},
		&model.ServiceCategory{},
		&model.Service{},
		&model.Venue{},
		&model.VenueService{},
		&model.Specialist{},
		&model.VenuePhoto{},
		&model.Subscription{},
		&model.Campaign{},
		&model.Review{},
	}
}

// Migrate runs schema migrations and seeds lookup tables.
func Migrate(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	if conn.Dialector.Name() == "postgres" {
		// venues.location is a geography column
		if err := conn.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
			logger.Error("Failed to enable postgis extension", err)
			return err
		}
	}

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedLookups(conn); err != nil {
		logger.Error("Failed to seed lookup data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
