package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Specialist is a staff member of a venue. Its ID is stable across edits because reviews
// and bookings reference it.
type Specialist struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VenueID   string    `gorm:"type:varchar(36);not null;index" json:"venue_id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Title     string    `gorm:"type:varchar(150)" json:"title"`
	Bio       string    `gorm:"type:text" json:"bio"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Specialist) TableName() string {
	return "specialists"
}

func (s *Specialist) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
