package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionController_ChangePlan(t *testing.T) {
	env := setupControllerTest(t, nil)
	venueID := env.createVenue(t, "Abone")

	w := env.do(t, http.MethodGet, "/venues/"+venueID+"/subscription", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "free", decodeBody(t, w)["subscription"].(map[string]interface{})["plan_id"])

	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Format(time.RFC3339)
	w = env.do(t, http.MethodPut, "/venues/"+venueID+"/subscription", map[string]interface{}{
		"plan_id":    "premium",
		"expires_at": expires,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	subscription := decodeBody(t, w)["subscription"].(map[string]interface{})
	assert.Equal(t, "premium", subscription["plan_id"])
	assert.Equal(t, true, subscription["is_active"])

	w = env.do(t, http.MethodPut, "/venues/"+venueID+"/subscription", map[string]interface{}{"plan_id": "platinum"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "plan_id")

	w = env.do(t, http.MethodPut, "/venues/"+venueID+"/subscription", map[string]interface{}{"plan_id": "standard"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "expires_at")

	w = env.do(t, http.MethodPut, "/venues/"+unknownID+"/subscription", map[string]interface{}{"plan_id": "free"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
