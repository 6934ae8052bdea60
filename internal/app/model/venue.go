package model

import (
	"time"

	"github.com/emx/guzellikharitam-backend/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxHeroImages bounds the hero image list kept on the venue row.
const MaxHeroImages = 5

type Venue struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:varchar(100)" json:"icon"`
	Address     string `gorm:"type:text" json:"address"`

	CategoryID string         `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category   *VenueCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"venue_categories,omitempty"`
	ProvinceID uint           `gorm:"not null;index" json:"province_id"`
	Province   *Province      `gorm:"foreignKey:ProvinceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"province,omitempty"`
	DistrictID *uint          `gorm:"index" json:"district_id"`
	District   *District      `gorm:"foreignKey:DistrictID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"district,omitempty"`

	// Location is derived from Latitude/Longitude in BeforeSave and never written directly.
	Latitude  *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	Location  *GeoPoint `json:"location"`

	IsVerified  bool `gorm:"not null;index" json:"is_verified"`
	IsPreferred bool `gorm:"not null;index" json:"is_preferred"`
	IsHygienic  bool `gorm:"not null" json:"is_hygienic"`

	SocialLinks    SocialLinks    `gorm:"serializer:json;type:text" json:"social_links"`
	WorkingHours   WorkingHours   `gorm:"serializer:json;type:text" json:"working_hours"`
	Features       StringList     `json:"features"`
	PaymentOptions StringList     `json:"payment_options"`
	Accessibility  Accessibility  `gorm:"serializer:json;type:text" json:"accessibility"`
	Certifications StringList     `json:"certifications"`
	FAQ            []FAQItem      `gorm:"column:faq;serializer:json;type:text" json:"faq"`
	ExpertTeam     []ExpertMember `gorm:"serializer:json;type:text" json:"expert_team"`

	// Derived from the photo collection; only the photo reconciliation writes these.
	ImageURL   *string    `gorm:"type:text" json:"image_url"`
	HeroImages StringList `json:"hero_images"`

	Photos        []VenuePhoto   `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Specialists   []Specialist   `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"specialists,omitempty"`
	VenueServices []VenueService `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"venue_services,omitempty"`
	Subscription  *Subscription  `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"subscription,omitempty"`
	Campaigns     []Campaign     `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"campaigns,omitempty"`
	Reviews       []Review       `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Venue) TableName() string {
	return "venues"
}

// BeforeCreate assigns the venue identifier.
func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave recomputes the point geometry from the discrete coordinates on every write.
func (v *Venue) BeforeSave(tx *gorm.DB) error {
	v.Location = nil
	if ewkt := util.PointEWKT(v.Latitude, v.Longitude); ewkt != nil {
		point := GeoPoint(*ewkt)
		v.Location = &point
	}
	return nil
}

// HeroImageURLs returns the URLs of the first MaxHeroImages photos in the given order.
func HeroImageURLs(photos []VenuePhoto) StringList {
	n := len(photos)
	if n > MaxHeroImages {
		n = MaxHeroImages
	}
	urls := make(StringList, 0, n)
	for _, p := range photos[:n] {
		urls = append(urls, p.URL)
	}
	return urls
}
