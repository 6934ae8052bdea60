package service

import (
	"fmt"
	"strings"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
)

// VenueInput is the root payload of an aggregate save. An empty ID creates a new venue.
type VenueInput struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Address     string
	CategoryID  string
	ProvinceID  uint
	DistrictID  *uint
	Latitude    *float64
	Longitude   *float64

	IsVerified  bool
	IsPreferred bool
	IsHygienic  bool

	SocialLinks    model.SocialLinks
	WorkingHours   model.WorkingHours
	Features       []string
	PaymentOptions []string
	Accessibility  model.Accessibility
	Certifications []string
	FAQ            []model.FAQItem
}

type ServiceAssignmentInput struct {
	ServiceID       string
	Price           float64
	DurationMinutes int
	IsActive        *bool
}

// SpecialistInput without an ID is inserted; with one it updates the stored row in place.
type SpecialistInput struct {
	ID       string
	Name     string
	Title    string
	Bio      string
	ImageURL string
	IsActive *bool
}

// PhotoInput carries a URL that has already been uploaded. Position comes from the slice index.
type PhotoInput struct {
	ID       string
	URL      string
	Category string
}

type SaveVenueRequest struct {
	Venue       VenueInput
	Services    []ServiceAssignmentInput
	Specialists []SpecialistInput
	Photos      []PhotoInput
	// Plan is applied only when the save creates the venue; defaults to free.
	Plan model.SubscriptionPlan
}

type SaveVenueResult struct {
	VenueID string
	Created bool
	Venue   *model.Venue
}

// ValidateVenue checks the required root fields and coordinate ranges.
func ValidateVenue(in VenueInput) error {
	verr := &ValidationError{}
	validateVenueInto(verr, in)
	return verr.orNil()
}

// ValidateSaveRequest validates the root and all three child payloads before anything is written.
func ValidateSaveRequest(req SaveVenueRequest) error {
	verr := &ValidationError{}
	validateVenueInto(verr, req.Venue)
	validateServicesInto(verr, req.Services)
	validateSpecialistsInto(verr, req.Specialists)
	validatePhotosInto(verr, req.Photos)

	if req.Plan != "" && !req.Plan.Valid() {
		verr.add("plan", ErrInvalidPlan.Error())
	}
	return verr.orNil()
}

func validateVenueInto(verr *ValidationError, in VenueInput) {
	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		verr.add("category_id", "is required")
	}
	if in.ProvinceID == 0 {
		verr.add("province_id", "is required")
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		verr.add("latitude", "must be between -90 and 90")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		verr.add("longitude", "must be between -180 and 180")
	}
	for day := range in.WorkingHours {
		if !isWeekday(day) {
			verr.add("working_hours."+day, "is not a weekday")
		}
	}
}

func validateServicesInto(verr *ValidationError, services []ServiceAssignmentInput) {
	seen := make(map[string]bool, len(services))
	for i, svc := range services {
		if strings.TrimSpace(svc.ServiceID) == "" {
			verr.add(fmt.Sprintf("services[%d].service_id", i), "is required")
			continue
		}
		if seen[svc.ServiceID] {
			verr.add(fmt.Sprintf("services[%d].service_id", i), "is duplicated")
		}
		seen[svc.ServiceID] = true
		if svc.Price < 0 {
			verr.add(fmt.Sprintf("services[%d].price", i), "must not be negative")
		}
		if svc.DurationMinutes < 0 {
			verr.add(fmt.Sprintf("services[%d].duration_minutes", i), "must not be negative")
		}
	}
}

func validateSpecialistsInto(verr *ValidationError, specialists []SpecialistInput) {
	seen := make(map[string]bool, len(specialists))
	for i, sp := range specialists {
		if strings.TrimSpace(sp.Name) == "" {
			verr.add(fmt.Sprintf("specialists[%d].name", i), "is required")
		}
		if sp.ID == "" {
			continue
		}
		if seen[sp.ID] {
			verr.add(fmt.Sprintf("specialists[%d].id", i), "is duplicated")
		}
		seen[sp.ID] = true
	}
}

func validatePhotosInto(verr *ValidationError, photos []PhotoInput) {
	seen := make(map[string]bool, len(photos))
	for i, p := range photos {
		if strings.TrimSpace(p.URL) == "" {
			verr.add(fmt.Sprintf("photos[%d].url", i), "is required")
		}
		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			verr.add(fmt.Sprintf("photos[%d].id", i), "is duplicated")
		}
		seen[p.ID] = true
	}
}

func isWeekday(day string) bool {
	for _, d := range model.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func (in VenueInput) toModel() *model.Venue {
	return &model.Venue{
		ID:             in.ID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Icon:           in.Icon,
		Address:        in.Address,
		CategoryID:     in.CategoryID,
		ProvinceID:     in.ProvinceID,
		DistrictID:     in.DistrictID,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		IsVerified:     in.IsVerified,
		IsPreferred:    in.IsPreferred,
		IsHygienic:     in.IsHygienic,
		SocialLinks:    in.SocialLinks,
		WorkingHours:   in.WorkingHours,
		Features:       model.StringList(in.Features),
		PaymentOptions: model.StringList(in.PaymentOptions),
		Accessibility:  in.Accessibility,
		Certifications: model.StringList(in.Certifications),
		FAQ:            in.FAQ,
	}
}

func expertTeam(specialists []SpecialistInput) []model.ExpertMember {
	team := make([]model.ExpertMember, 0, len(specialists))
	for _, sp := range specialists {
		team = append(team, model.ExpertMember{Name: sp.Name, Title: sp.Title})
	}
	return team
}

func boolOrTrue(b *bool) bool {
	return b == nil || *b
}
