package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	Initialize(Config{Level: "debug", Format: "json", Output: &buf})

	Error("save failed", errors.New("boom"), map[string]interface{}{
		"venue_id": "v-1",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "save failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "v-1", entry["venue_id"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Initialize(Config{Level: "warn", Format: "json", Output: &buf})

	Info("hidden")
	assert.Zero(t, buf.Len())

	WithContext(map[string]interface{}{"request_id": "r-1"}).Warn("shown")
	assert.Contains(t, buf.String(), `"request_id":"r-1"`)

	Initialize(Config{Level: "info", Format: "json", Output: &bytes.Buffer{}})
}
