package model

import "time"

type ServiceCategory struct {
	ID   string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`

	Services []Service `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

// Service is a catalog entry (e.g. "Manikür") that venues price individually.
type Service struct {
	ID                     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	CategoryID             string `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Name                   string `gorm:"type:varchar(150);not null" json:"name"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
}

func (Service) TableName() string {
	return "services"
}

// VenueService assigns a catalog service to a venue with a venue-specific price and duration.
// The (venue, service) pair is the identity; the collection is replaced wholesale on save.
type VenueService struct {
	VenueID         string    `gorm:"type:varchar(36);primaryKey" json:"venue_id"`
	ServiceID       string    `gorm:"type:varchar(36);primaryKey" json:"service_id"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

func (VenueService) TableName() string {
	return "venue_services"
}
