package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/events"
	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "citas.appointment.created", events.RoutingKey(service.EventAppointmentCreated))
	assert.Equal(t, "citas.appointment.deleted", events.RoutingKey(service.EventAppointmentDeleted))
}

func TestNewMessage(t *testing.T) {
	at := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	ev := service.AppointmentEvent{
		Kind: service.EventAppointmentUpdated,
		At:   at,
		Appointment: model.Appointment{
			ID:        3,
			Date:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Time:      9*time.Hour + 30*time.Minute,
			Status:    model.StatusConfirmed,
			PatientID: 10,
			DoctorID:  4,
		},
	}

	raw, err := json.Marshal(events.NewMessage(ev))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "updated", got["evento"])
	assert.Equal(t, "2025-07-01", got["fecha"])
	assert.Equal(t, "09:30:00", got["hora"])
	assert.Equal(t, "CONFIRMADA", got["estado"])
	assert.EqualValues(t, 10, got["pacienteId"])
	assert.EqualValues(t, 4, got["medicoId"])
	assert.EqualValues(t, 3, got["citaId"])
	assert.Len(t, got["eventoId"], 36)
}
