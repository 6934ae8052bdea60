package fcm

import "errors"

var (
	// ErrMissingServerKey is returned when no server key is configured
	ErrMissingServerKey = errors.New("FCM_SERVER_KEY not set")

	// ErrNetworkError is returned when the gateway could not be reached
	ErrNetworkError = errors.New("network error")

	// ErrInvalidResponse is returned when the gateway answers with something other than JSON
	ErrInvalidResponse = errors.New("invalid gateway response")
)
