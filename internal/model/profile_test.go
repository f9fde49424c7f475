package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/model"
)

func id(v int64) *int64 { return &v }

func TestParseUserType(t *testing.T) {
	assert.Equal(t, model.UserTypePatient, model.ParseUserType("paciente"))
	assert.Equal(t, model.UserTypeDoctor, model.ParseUserType(" MEDICO "))
	assert.Equal(t, model.UserTypeAdmin, model.ParseUserType("Admin"))
	assert.Equal(t, model.UserTypeUnknown, model.ParseUserType("ENFERMERO"))
	assert.Equal(t, model.UserTypeUnknown, model.ParseUserType(""))
}

func TestNewProfile_Patient(t *testing.T) {
	p, err := model.NewProfile(model.UserTypePatient, id(1), nil)
	require.NoError(t, err)
	assert.Equal(t, model.UserTypePatient, p.Type())
	// the requested role is overridden
	assert.Equal(t, model.RoleIDPatient, *p.RoleID())
	assert.Nil(t, p.SpecialtyID())

	_, err = model.NewProfile(model.UserTypePatient, nil, id(2))
	assert.ErrorIs(t, err, model.ErrInvalidUser)
}

func TestNewProfile_Doctor(t *testing.T) {
	p, err := model.NewProfile(model.UserTypeDoctor, nil, id(3))
	require.NoError(t, err)
	assert.Equal(t, model.UserTypeDoctor, p.Type())
	assert.Equal(t, model.RoleIDDoctor, *p.RoleID())
	assert.Equal(t, int64(3), *p.SpecialtyID())

	_, err = model.NewProfile(model.UserTypeDoctor, id(2), nil)
	assert.ErrorIs(t, err, model.ErrInvalidUser)
}

func TestNewProfile_AdminKeepsReferences(t *testing.T) {
	p, err := model.NewProfile(model.UserTypeAdmin, id(1), nil)
	require.NoError(t, err)
	assert.Equal(t, model.UserTypeAdmin, p.Type())
	assert.Equal(t, int64(1), *p.RoleID())
	assert.Nil(t, p.SpecialtyID())
}

func TestNewProfile_Unknown(t *testing.T) {
	_, err := model.NewProfile(model.UserTypeUnknown, nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidUser)
}

func TestRestoreProfile(t *testing.T) {
	assert.Equal(t, model.PatientProfile{}, model.RestoreProfile(model.UserTypePatient, id(3), nil))
	assert.Equal(t, model.DoctorProfile{Specialty: 2}, model.RestoreProfile(model.UserTypeDoctor, id(2), id(2)))

	// inconsistent rows degrade instead of failing
	p := model.RestoreProfile(model.UserTypeDoctor, id(2), nil)
	assert.Equal(t, model.UserTypeDoctor, p.Type())
	assert.Nil(t, p.SpecialtyID())
}
