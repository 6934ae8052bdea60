package model

import "time"

type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "free"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// Subscription is the single plan record of a venue.
type Subscription struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	VenueID   string           `gorm:"type:varchar(36);not null;uniqueIndex" json:"venue_id"`
	PlanID    SubscriptionPlan `gorm:"type:varchar(20);not null" json:"plan_id"`
	IsActive  bool             `gorm:"not null;index" json:"is_active"`
	StartsAt  time.Time        `json:"starts_at"`
	ExpiresAt *time.Time       `gorm:"index" json:"expires_at"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "venues_subscription"
}
