package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "citas", "info", "json")
	log.Debug("hidden")
	log.Info("appointment.created", "id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "appointment.created", line["msg"])
	assert.Equal(t, "citas", line["service"])
	assert.EqualValues(t, 7, line["id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, "usuarios", "debug", "text").Debug("user.created")
	assert.Contains(t, buf.String(), "msg=user.created")
	assert.Contains(t, buf.String(), "service=usuarios")
}
