package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

type UserStore interface {
	service.UserRepository
	service.Catalog
}

// UserRepository checks user persistence, unique email and the catalog
// references.
func UserRepository(t *testing.T, newStore func(t *testing.T) UserStore) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		u := RandomUser(model.DoctorProfile{Specialty: 3})
		require.NoError(t, s.CreateUser(ctx, u))
		assert.NotZero(t, u.ID)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, u.PasswordHash, got.PasswordHash)
		assert.Equal(t, model.DoctorProfile{Specialty: 3}, got.Profile)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newStore(t).GetUser(ctx, MissingID)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("email is unique", func(t *testing.T) {
		s := newStore(t)
		u := RandomUser(model.PatientProfile{})
		require.NoError(t, s.CreateUser(ctx, u))

		dup := RandomUser(model.PatientProfile{})
		dup.Email = u.Email
		assert.ErrorIs(t, s.CreateUser(ctx, dup), model.ErrDuplicateEmail)
	})

	t.Run("unknown specialty", func(t *testing.T) {
		u := RandomUser(model.DoctorProfile{Specialty: 9999})
		assert.ErrorIs(t, newStore(t).CreateUser(ctx, u), model.ErrInvalidUser)
	})

	t.Run("by email", func(t *testing.T) {
		s := newStore(t)
		u := RandomUser(model.PatientProfile{})
		require.NoError(t, s.CreateUser(ctx, u))

		got, err := s.UserByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		got, err = s.UserByEmail(ctx, RandomEmail())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update and delete", func(t *testing.T) {
		s := newStore(t)
		u := RandomUser(model.PatientProfile{})
		require.NoError(t, s.CreateUser(ctx, u))

		u.Name = "Renamed"
		u.Profile = model.DoctorProfile{Specialty: 1}
		require.NoError(t, s.UpdateUser(ctx, u))
		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, model.DoctorProfile{Specialty: 1}, got.Profile)

		require.NoError(t, s.DeleteUser(ctx, u.ID))
		_, err = s.GetUser(ctx, u.ID)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
		assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), model.ErrUserNotFound)
	})

	t.Run("catalog", func(t *testing.T) {
		s := newStore(t)
		r, err := s.Role(ctx, model.RoleIDDoctor)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, "MEDICO", r.Name)

		r, err = s.Role(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, r)

		sp, err := s.Specialty(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, sp)
		assert.Equal(t, "Cardiología", sp.Name)

		roles, err := s.Roles(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(roles), 3)

		specialties, err := s.Specialties(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(specialties), 4)
	})
}
