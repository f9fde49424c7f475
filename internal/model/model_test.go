package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/model"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]model.Status{
		"PENDIENTE":    model.StatusPending,
		" confirmada ": model.StatusConfirmed,
		"Cancelada":    model.StatusCancelled,
	} {
		got, err := model.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "DONE", "PENDING"} {
		_, err := model.ParseStatus(in)
		assert.ErrorIs(t, err, model.ErrInvalidRequest, in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), d)

	for _, in := range []string{"", "01/07/2025", "2025-13-01", "2025-02-30"} {
		_, err := model.ParseDate(in)
		assert.ErrorIs(t, err, model.ErrInvalidRequest, in)
	}
}

func TestParseClock(t *testing.T) {
	d, err := model.ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	d, err = model.ParseClock("17:05")
	require.NoError(t, err)
	assert.Equal(t, 17*time.Hour+5*time.Minute, d)

	for _, in := range []string{"", "25:00:00", "9.30", "noon"} {
		_, err := model.ParseClock(in)
		assert.ErrorIs(t, err, model.ErrInvalidRequest, in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:30:00", model.FormatClock(9*time.Hour+30*time.Minute))
	assert.Equal(t, "00:00:00", model.FormatClock(0))
	assert.Equal(t, "23:59:59", model.FormatClock(24*time.Hour-time.Second))

	d, err := model.ParseClock("14:07:09")
	require.NoError(t, err)
	assert.Equal(t, "14:07:09", model.FormatClock(d))
}
