package fcm

import "encoding/json"

// Message is the relay input: a device token, the visible notification and an optional payload.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]interface{}
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sendRequest is the legacy HTTP payload.
type sendRequest struct {
	To           string                 `json:"to"`
	Notification notification           `json:"notification"`
	Data         map[string]interface{} `json:"data"`
}

// Response is the gateway answer, kept verbatim.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}
