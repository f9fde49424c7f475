package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

// AppointmentRepository checks the behaviour every appointment store must
// share, including the one-booking-per-slot rules.
func AppointmentRepository(t *testing.T, newStore func(t *testing.T) service.AppointmentRepository) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))
		assert.NotZero(t, a.ID)
		assert.False(t, a.CreatedAt.IsZero())

		got, err := s.GetAppointment(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.True(t, a.Date.Equal(got.Date), "date %s != %s", a.Date, got.Date)
		assert.Equal(t, a.Time, got.Time)
		assert.Equal(t, a.Status, got.Status)
		assert.Equal(t, a.Notes, got.Notes)
		assert.Equal(t, a.PatientID, got.PatientID)
		assert.Equal(t, a.DoctorID, got.DoctorID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newStore(t).GetAppointment(ctx, MissingID)
		assert.ErrorIs(t, err, model.ErrAppointmentNotFound)
	})

	t.Run("list includes created", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))

		all, err := s.ListAppointments(ctx)
		require.NoError(t, err)
		var ids []int64
		for _, x := range all {
			ids = append(ids, x.ID)
		}
		assert.Contains(t, ids, a.ID)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))

		a.Status = model.StatusConfirmed
		a.Notes = "moved"
		require.NoError(t, s.UpdateAppointment(ctx, a))

		got, err := s.GetAppointment(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, got.Status)
		assert.Equal(t, "moved", got.Notes)

		missing := RandomAppointment()
		missing.ID = MissingID
		assert.ErrorIs(t, s.UpdateAppointment(ctx, missing), model.ErrAppointmentNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))
		require.NoError(t, s.DeleteAppointment(ctx, a.ID))

		_, err := s.GetAppointment(ctx, a.ID)
		assert.ErrorIs(t, err, model.ErrAppointmentNotFound)
		assert.ErrorIs(t, s.DeleteAppointment(ctx, a.ID), model.ErrAppointmentNotFound)
	})

	t.Run("slot lookups", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))

		got, err := s.AppointmentByPatientSlot(ctx, a.PatientID, a.Date, a.Time)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, a.ID, got.ID)

		got, err = s.AppointmentByDoctorSlot(ctx, a.DoctorID, a.Date, a.Time)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, a.ID, got.ID)

		got, err = s.AppointmentByDoctorSlot(ctx, a.DoctorID, a.Date.AddDate(0, 0, 1), a.Time)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("patient cannot be double booked", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))

		b := RandomAppointment()
		b.PatientID, b.Date, b.Time = a.PatientID, a.Date, a.Time
		assert.ErrorIs(t, s.CreateAppointment(ctx, b), model.ErrDuplicateAppointment)
	})

	t.Run("doctor cannot be double booked", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))

		b := RandomAppointment()
		b.DoctorID, b.Date, b.Time = a.DoctorID, a.Date, a.Time
		assert.ErrorIs(t, s.CreateAppointment(ctx, b), model.ErrDuplicateAppointment)
	})

	t.Run("update may keep its own slot", func(t *testing.T) {
		s := newStore(t)
		a := RandomAppointment()
		require.NoError(t, s.CreateAppointment(ctx, a))
		a.Status = model.StatusCancelled
		assert.NoError(t, s.UpdateAppointment(ctx, a))
	})
}
