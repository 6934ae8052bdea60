package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoURLs(photos []model.VenuePhoto) []string {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p.URL)
	}
	return urls
}

func TestVenueService_SaveVenueCreatesAggregate(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	lat, lng := 41.0369, 28.9850
	in := baseVenueInput("Taksim Güzellik")
	in.Latitude, in.Longitude = &lat, &lng
	in.Features = []string{"wifi"}

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue: in,
		Services: []ServiceAssignmentInput{
			{ServiceID: testHaircutID, Price: 400, DurationMinutes: 45},
		},
		Specialists: []SpecialistInput{{Name: "Ayşe", Title: "Kuaför"}},
		Photos:      []PhotoInput{{URL: "https://cdn.example.com/a.jpg"}},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Venue)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.VenueID)

	venue := result.Venue
	require.NotNil(t, venue.Location)
	assert.Equal(t, model.GeoPoint("SRID=4326;POINT(28.985 41.0369)"), *venue.Location)
	require.NotNil(t, venue.ImageURL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", *venue.ImageURL)
	assert.Equal(t, model.StringList{"https://cdn.example.com/a.jpg"}, venue.HeroImages)
	assert.Equal(t, []model.ExpertMember{{Name: "Ayşe", Title: "Kuaför"}}, venue.ExpertTeam)

	services, err := env.service.ListServices(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, services[0].IsActive)

	specialists, err := env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, specialists, 1)
	assert.True(t, specialists[0].IsActive)

	var subscription model.Subscription
	require.NoError(t, env.db.Where("venue_id = ?", result.VenueID).First(&subscription).Error)
	assert.Equal(t, model.PlanFree, subscription.PlanID)
	assert.True(t, subscription.IsActive)

	assert.Contains(t, env.cache.invalidated, result.VenueID)
	assert.Equal(t, 1.0, savesTotal(t, env.metrics, metrics.OutcomeSuccess))
}

func TestVenueService_ServicesIdempotentAndClearable(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	services := []ServiceAssignmentInput{
		{ServiceID: testHaircutID, Price: 400, DurationMinutes: 45},
		{ServiceID: testBlowDryID, Price: 150, DurationMinutes: 30, IsActive: boolPtr(false)},
	}
	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{Venue: baseVenueInput("Idempotent"), Services: services})
	require.NoError(t, err)

	first, err := env.service.ListServices(ctx, result.VenueID)
	require.NoError(t, err)

	in := baseVenueInput("Idempotent")
	in.ID = result.VenueID
	_, err = env.service.SaveVenue(ctx, SaveVenueRequest{Venue: in, Services: services})
	require.NoError(t, err)

	second, err := env.service.ListServices(ctx, result.VenueID)
	require.NoError(t, err)

	key := func(list []model.VenueService) map[string]string {
		out := make(map[string]string, len(list))
		for _, s := range list {
			out[s.ServiceID] = fmt.Sprintf("%.2f/%d/%t", s.Price, s.DurationMinutes, s.IsActive)
		}
		return out
	}
	assert.Len(t, second, 2)
	assert.Equal(t, key(first), key(second))
	assert.Equal(t, "150.00/30/false", key(second)[testBlowDryID])

	_, err = env.service.SaveVenue(ctx, SaveVenueRequest{Venue: in, Services: nil})
	require.NoError(t, err)

	cleared, err := env.service.ListServices(ctx, result.VenueID)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestVenueService_ReplaceServicesRejectsDuplicates(t *testing.T) {
	env := setupVenueServiceTest(t)

	err := env.service.ReplaceServices(context.Background(), "any", []ServiceAssignmentInput{
		{ServiceID: testManicureID, Price: 1},
		{ServiceID: testManicureID, Price: 2},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "services[1].service_id")
}

func TestVenueService_SpecialistsMixedReconcile(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       baseVenueInput("Staff"),
		Specialists: []SpecialistInput{{Name: "Kept"}, {Name: "Dropped"}},
	})
	require.NoError(t, err)

	stored, err := env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	ids := map[string]string{}
	for _, sp := range stored {
		ids[sp.Name] = sp.ID
	}

	saved, err := env.service.ReconcileSpecialists(ctx, result.VenueID, []SpecialistInput{
		{ID: ids["Kept"], Name: "Kept Renamed", Bio: "10 yıllık deneyim"},
		{Name: "Newcomer"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, ids["Kept"], saved[0].ID)
	assert.NotEmpty(t, saved[1].ID)
	assert.NotEqual(t, ids["Dropped"], saved[1].ID)

	stored, err = env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, sp := range stored {
		assert.NotEqual(t, ids["Dropped"], sp.ID)
	}
}

func TestVenueService_SpecialistRenameKeepsIdentity(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       baseVenueInput("Rename"),
		Specialists: []SpecialistInput{{Name: "X"}},
	})
	require.NoError(t, err)

	stored, err := env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	in := baseVenueInput("Rename")
	in.ID = result.VenueID
	_, err = env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       in,
		Specialists: []SpecialistInput{{ID: id, Name: "Y"}},
	})
	require.NoError(t, err)

	stored, err = env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.Equal(t, "Y", stored[0].Name)
}

func TestVenueService_UnknownSpecialistID(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       baseVenueInput("Unknown Specialist"),
		Specialists: []SpecialistInput{{ID: "00000000-0000-0000-0000-000000000099", Name: "Ghost"}},
	})
	require.Error(t, err)

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
	assert.True(t, IsNotFound(err))

	// The root is already persisted and its id is reported for a retry.
	require.NotNil(t, result)
	assert.NotEmpty(t, result.VenueID)
	_, getErr := env.service.GetVenue(ctx, result.VenueID)
	assert.NoError(t, getErr)
}

func TestVenueService_PhotoOrderingScenario(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:  baseVenueInput("Gallery"),
		Photos: []PhotoInput{{URL: "A"}, {URL: "B"}, {URL: "C"}},
	})
	require.NoError(t, err)

	photos, err := env.service.ListPhotos(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, []string{"A", "B", "C"}, photoURLs(photos))
	for i, p := range photos {
		assert.Equal(t, i, p.SortOrder)
		assert.Equal(t, i == 0, p.IsHeroImage)
		assert.Equal(t, model.DefaultPhotoCategory, p.Category)
	}
	require.NotNil(t, result.Venue.ImageURL)
	assert.Equal(t, "A", *result.Venue.ImageURL)
	assert.Equal(t, model.StringList{"A", "B", "C"}, result.Venue.HeroImages)

	byURL := map[string]string{}
	for _, p := range photos {
		byURL[p.URL] = p.ID
	}

	in := baseVenueInput("Gallery")
	in.ID = result.VenueID
	result, err = env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:  in,
		Photos: []PhotoInput{{ID: byURL["C"], URL: "C"}, {ID: byURL["A"], URL: "A"}},
	})
	require.NoError(t, err)

	photos, err = env.service.ListPhotos(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, []string{"C", "A"}, photoURLs(photos))
	assert.Equal(t, byURL["C"], photos[0].ID)
	assert.True(t, photos[0].IsHeroImage)
	assert.Equal(t, 0, photos[0].SortOrder)
	assert.Equal(t, byURL["A"], photos[1].ID)
	assert.False(t, photos[1].IsHeroImage)
	assert.Equal(t, 1, photos[1].SortOrder)

	var count int64
	env.db.Model(&model.VenuePhoto{}).Where("id = ?", byURL["B"]).Count(&count)
	assert.Zero(t, count)

	require.NotNil(t, result.Venue.ImageURL)
	assert.Equal(t, "C", *result.Venue.ImageURL)
	assert.Equal(t, model.StringList{"C", "A"}, result.Venue.HeroImages)
}

func TestVenueService_ReconcilePhotosRejectsRepeatedIDs(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:  baseVenueInput("Repeat"),
		Photos: []PhotoInput{{URL: "X"}, {URL: "Y"}},
	})
	require.NoError(t, err)

	photos, err := env.service.ListPhotos(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	x, y := photos[0], photos[1]

	_, err = env.service.ReconcilePhotos(ctx, result.VenueID, []PhotoInput{
		{ID: x.ID, URL: "X"},
		{ID: y.ID, URL: "Y"},
		{ID: x.ID, URL: "X"},
		{URL: " "},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photos[2].id")
	assert.Contains(t, verr.Fields, "photos[3].url")

	// Nothing was written: order, hero flag and derived images are untouched.
	photos, err = env.service.ListPhotos(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, []string{"X", "Y"}, photoURLs(photos))
	assert.True(t, photos[0].IsHeroImage)
	assert.Equal(t, 1, photos[1].SortOrder)

	venue, err := env.service.GetVenue(ctx, result.VenueID)
	require.NoError(t, err)
	require.NotNil(t, venue.ImageURL)
	assert.Equal(t, "X", *venue.ImageURL)
	assert.Equal(t, model.StringList{"X", "Y"}, venue.HeroImages)
}

func TestVenueService_ReconcileSpecialistsRejectsRepeatedIDs(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       baseVenueInput("Repeat Staff"),
		Specialists: []SpecialistInput{{Name: "Ayşe"}, {Name: "Elif"}},
	})
	require.NoError(t, err)

	stored, err := env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	_, err = env.service.ReconcileSpecialists(ctx, result.VenueID, []SpecialistInput{
		{ID: stored[0].ID, Name: "Ayşe"},
		{ID: stored[0].ID, Name: "Ayşe Kopya"},
		{Name: ""},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "specialists[1].id")
	assert.Contains(t, verr.Fields, "specialists[2].name")

	after, err := env.service.ListSpecialists(ctx, result.VenueID)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestVenueService_HeroImagesBoundedToFive(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	photos := make([]PhotoInput, 0, 7)
	for i := 0; i < 7; i++ {
		photos = append(photos, PhotoInput{URL: fmt.Sprintf("p%d", i), Category: "exterior"})
	}
	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{Venue: baseVenueInput("Many"), Photos: photos})
	require.NoError(t, err)

	assert.Equal(t, model.StringList{"p0", "p1", "p2", "p3", "p4"}, result.Venue.HeroImages)

	stored, err := env.service.ListPhotos(ctx, result.VenueID)
	require.NoError(t, err)
	require.Len(t, stored, 7)
	assert.Equal(t, "exterior", stored[6].Category)
	assert.Equal(t, 6, stored[6].SortOrder)
}

func TestVenueService_EmptyPhotosClearDerivedImages(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{Venue: baseVenueInput("Clear"), Photos: []PhotoInput{{URL: "A"}}})
	require.NoError(t, err)

	in := baseVenueInput("Clear")
	in.ID = result.VenueID
	result, err = env.service.SaveVenue(ctx, SaveVenueRequest{Venue: in})
	require.NoError(t, err)

	assert.Nil(t, result.Venue.ImageURL)
	assert.Empty(t, result.Venue.HeroImages)
}

func TestVenueService_MissingCategoryWritesNothing(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	in := baseVenueInput("No Category")
	in.CategoryID = ""

	result, err := env.service.SaveVenue(ctx, SaveVenueRequest{
		Venue:       in,
		Services:    []ServiceAssignmentInput{{ServiceID: testHaircutID, Price: 1}},
		Specialists: []SpecialistInput{{Name: "X"}},
		Photos:      []PhotoInput{{URL: "A"}},
	})
	assert.Nil(t, result)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")

	for _, m := range []interface{}{&model.Venue{}, &model.VenueService{}, &model.Specialist{}, &model.VenuePhoto{}} {
		var count int64
		require.NoError(t, env.db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.Equal(t, 1.0, savesTotal(t, env.metrics, metrics.OutcomeValidation))
}

func TestVenueService_ValidationFields(t *testing.T) {
	lat := 95.0
	in := VenueInput{Latitude: &lat, WorkingHours: model.WorkingHours{"funday": {}}}

	err := ValidateSaveRequest(SaveVenueRequest{
		Venue:       in,
		Specialists: []SpecialistInput{{Name: " "}},
		Photos:      []PhotoInput{{URL: ""}},
		Plan:        "platinum",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"name", "category_id", "province_id", "latitude", "working_hours.funday", "specialists[0].name", "photos[0].url", "plan"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Contains(t, err.Error(), "validation failed")
}

func TestVenueService_UpdateUnknownVenue(t *testing.T) {
	env := setupVenueServiceTest(t)

	in := baseVenueInput("Ghost")
	in.ID = "00000000-0000-0000-0000-000000000001"
	result, err := env.service.SaveVenue(context.Background(), SaveVenueRequest{Venue: in})
	assert.Nil(t, result)

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.True(t, errors.Is(err, ErrVenueNotFound))
}

func TestVenueService_UnknownCategoryIsStoreError(t *testing.T) {
	env := setupVenueServiceTest(t)

	in := baseVenueInput("Bad FK")
	in.CategoryID = "00000000-0000-0000-0000-00000000000f"
	_, err := env.service.SaveVenue(context.Background(), SaveVenueRequest{Venue: in})

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "create venue", serr.Op)
	assert.False(t, IsNotFound(err))
}

func TestVenueService_ListAndDelete(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Alpha Spa", "Beta Kuaför", "Alpha Nails"} {
		result, err := env.service.SaveVenue(ctx, SaveVenueRequest{Venue: baseVenueInput(name)})
		require.NoError(t, err)
		ids = append(ids, result.VenueID)
	}

	list, err := env.service.ListVenues(ctx, VenueListOptions{Search: "alpha", PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)

	require.NoError(t, env.service.DeleteVenue(ctx, ids[0]))
	assert.Contains(t, env.cache.invalidated, ids[0])

	_, err = env.service.GetVenue(ctx, ids[0])
	assert.ErrorIs(t, err, ErrVenueNotFound)

	err = env.service.DeleteVenue(ctx, ids[0])
	assert.ErrorIs(t, err, ErrVenueNotFound)

	var subscriptions int64
	env.db.Model(&model.Subscription{}).Where("venue_id = ?", ids[0]).Count(&subscriptions)
	assert.Zero(t, subscriptions)
}

func TestVenueService_UpsertVenueOnly(t *testing.T) {
	env := setupVenueServiceTest(t)
	ctx := context.Background()

	venue, err := env.service.UpsertVenue(ctx, baseVenueInput("Root Only"))
	require.NoError(t, err)
	assert.NotEmpty(t, venue.ID)
	require.NotNil(t, venue.Category)

	_, err = env.service.UpsertVenue(ctx, VenueInput{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
