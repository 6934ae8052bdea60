package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is written by app users; SpecialistID optionally points at the staff member reviewed.
type Review struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VenueID      string    `gorm:"type:varchar(36);not null;index" json:"venue_id"`
	SpecialistID *string   `gorm:"type:varchar(36);index" json:"specialist_id"`
	UserName     string    `gorm:"type:varchar(100)" json:"user_name"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
