package model

import (
	"fmt"
	"strings"
)

type UserType string

const (
	UserTypePatient UserType = "PACIENTE"
	UserTypeDoctor  UserType = "MEDICO"
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeUnknown UserType = "DESCONOCIDO"
)

// ParseUserType never fails: anything unrecognised is UserTypeUnknown.
func ParseUserType(s string) UserType {
	switch t := UserType(strings.ToUpper(strings.TrimSpace(s))); t {
	case UserTypePatient, UserTypeDoctor, UserTypeAdmin:
		return t
	}
	return UserTypeUnknown
}

// Fixed role ids seeded by the usuarios schema.
const (
	RoleIDAdmin   int64 = 1
	RoleIDDoctor  int64 = 2
	RoleIDPatient int64 = 3
)

// Profile is the type-specific part of a user. Each variant carries only
// the references its type allows.
type Profile interface {
	Type() UserType
	RoleID() *int64
	SpecialtyID() *int64
	profile()
}

// PatientProfile always has the patient role and never a specialty.
type PatientProfile struct{}

func (PatientProfile) Type() UserType      { return UserTypePatient }
func (PatientProfile) RoleID() *int64      { return ref(RoleIDPatient) }
func (PatientProfile) SpecialtyID() *int64 { return nil }
func (PatientProfile) profile()            {}

// DoctorProfile always has the doctor role and a specialty.
type DoctorProfile struct {
	Specialty int64
}

func (DoctorProfile) Type() UserType        { return UserTypeDoctor }
func (DoctorProfile) RoleID() *int64        { return ref(RoleIDDoctor) }
func (p DoctorProfile) SpecialtyID() *int64 { return ref(p.Specialty) }
func (DoctorProfile) profile()              {}

// StaffProfile covers every other user type; role and specialty are
// whatever the caller supplied.
type StaffProfile struct {
	Kind      UserType
	Role      *int64
	Specialty *int64
}

func (p StaffProfile) Type() UserType      { return p.Kind }
func (p StaffProfile) RoleID() *int64      { return p.Role }
func (p StaffProfile) SpecialtyID() *int64 { return p.Specialty }
func (StaffProfile) profile()              {}

// NewProfile derives the profile for a user type from the references the
// caller supplied.
func NewProfile(t UserType, roleID, specialtyID *int64) (Profile, error) {
	switch t {
	case UserTypePatient:
		if specialtyID != nil {
			return nil, fmt.Errorf("%w: a %s user must not have a specialty", ErrInvalidUser, t)
		}
		return PatientProfile{}, nil
	case UserTypeDoctor:
		if specialtyID == nil {
			return nil, fmt.Errorf("%w: a %s user must have a specialty", ErrInvalidUser, t)
		}
		return DoctorProfile{Specialty: *specialtyID}, nil
	case UserTypeAdmin:
		return StaffProfile{Kind: t, Role: roleID, Specialty: specialtyID}, nil
	}
	return nil, fmt.Errorf("%w: unsupported user type %q", ErrInvalidUser, t)
}

// RestoreProfile rebuilds a profile from stored columns. Rows that no
// longer satisfy the rules come back as a StaffProfile instead of failing.
func RestoreProfile(t UserType, roleID, specialtyID *int64) Profile {
	switch {
	case t == UserTypePatient && specialtyID == nil:
		return PatientProfile{}
	case t == UserTypeDoctor && specialtyID != nil:
		return DoctorProfile{Specialty: *specialtyID}
	}
	return StaffProfile{Kind: t, Role: roleID, Specialty: specialtyID}
}

func ref(v int64) *int64 { return &v }
