package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultPhotoCategory = "interior"

// VenuePhoto is an ordered image reference. SortOrder is dense from 0 and only the
// first photo carries IsHeroImage.
type VenuePhoto struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VenueID     string    `gorm:"type:varchar(36);not null;index:idx_venue_photo_order" json:"venue_id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	SortOrder   int       `gorm:"not null;index:idx_venue_photo_order" json:"sort_order"`
	IsHeroImage bool      `gorm:"not null" json:"is_hero_image"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (VenuePhoto) TableName() string {
	return "venue_photos"
}

func (p *VenuePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
