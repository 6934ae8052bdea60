package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emx/guzellikharitam-backend/pkg/logger"
)

// Client relays notifications to the FCM legacy HTTP API
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new FCM client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Send posts the message and returns the gateway JSON unchanged, whatever its status code.
func (c *Client) Send(ctx context.Context, msg Message) (*Response, error) {
	data := msg.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	return c.doRequest(ctx, sendRequest{
		To:           msg.Token,
		Notification: notification{Title: msg.Title, Body: msg.Body},
		Data:         data,
	})
}

func (c *Client) doRequest(ctx context.Context, payload interface{}) (*Response, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "key="+c.config.ServerKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !json.Valid(body) {
		logger.Warn("Push gateway returned non-JSON body", map[string]interface{}{
			"status_code": resp.StatusCode,
			"body_length": len(body),
		})
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	logger.Debug("Push gateway responded", map[string]interface{}{
		"status_code": resp.StatusCode,
	})
	return &Response{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}, nil
}
