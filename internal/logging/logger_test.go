package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"trace", logrus.TraceLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "level %q", tt.input)
	}
}

func TestNew_ProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("info", "production", &buf)

	WithComponent(logger, "api").WithField("request_id", "req-1").Info("Request handled")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, "Request handled", fields["msg"])
	assert.Equal(t, "api", fields["component"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestNew_DevelopmentLogsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("debug", "development", &buf)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), `msg=visible`)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("warn", "production", &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
