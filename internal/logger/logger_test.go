package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		format        string
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{"default configuration", "", "", logrus.InfoLevel, false},
		{"debug level with json format", "debug", "json", logrus.DebugLevel, true},
		{"error level with text format", "error", "text", logrus.ErrorLevel, false},
		{"invalid level defaults to info", "invalid", "", logrus.InfoLevel, false},
		{"case insensitive level", "DEBUG", "JSON", logrus.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, tt.format, &buf)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())

			buf.Reset()
			log.WithField("week", 5).Error("Error processing file")

			if tt.expectJSON {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "Error processing file", entry["msg"])
				assert.Equal(t, float64(5), entry["week"])
			} else {
				assert.True(t, strings.Contains(buf.String(), "week=5"))
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() { log.Info("dropped") })
}
