package fcm

// DefaultEndpoint is the legacy HTTP send endpoint.
const DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// Config represents the configuration for the FCM client
type Config struct {
	// ServerKey is the legacy server key sent as "Authorization: key=<ServerKey>"
	ServerKey string

	// Endpoint overrides DefaultEndpoint
	Endpoint string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ServerKey == "" {
		return ErrMissingServerKey
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	return nil
}
