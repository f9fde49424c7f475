package service

import (
	"context"
	"time"

	"medical-agenda/internal/model"
)

// AppointmentRepository is the persistence port of the appointment service.
// Get returns model.ErrAppointmentNotFound for a missing id, the slot
// lookups return (nil, nil) when nothing matches, and Create/Update return
// model.ErrDuplicateAppointment when the store's slot constraint rejects
// the row.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error
	AppointmentByPatientSlot(ctx context.Context, patientID int64, date time.Time, clock time.Duration) (*model.Appointment, error)
	AppointmentByDoctorSlot(ctx context.Context, doctorID int64, date time.Time, clock time.Duration) (*model.Appointment, error)
}

// UserRepository is the persistence port of the user service. UserByEmail
// returns (nil, nil) when no user has the email.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Catalog resolves the Role and Specialty reference entities. Lookups of a
// missing id return (nil, nil).
type Catalog interface {
	Role(ctx context.Context, id int64) (*model.Role, error)
	Specialty(ctx context.Context, id int64) (*model.Specialty, error)
	Roles(ctx context.Context) ([]model.Role, error)
	Specialties(ctx context.Context) ([]model.Specialty, error)
}

// RoleResolver reports the type of a user owned by the user service.
// An unknown user is model.UserTypeUnknown, not an error; an unreachable
// or failing user service is model.ErrUserServiceUnavailable.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int64) (model.UserType, error)
}

type EventKind string

const (
	EventAppointmentCreated EventKind = "created"
	EventAppointmentUpdated EventKind = "updated"
	EventAppointmentDeleted EventKind = "deleted"
)

type AppointmentEvent struct {
	Kind        EventKind
	Appointment model.Appointment
	At          time.Time
}

// EventPublisher receives appointment changes after they are committed.
type EventPublisher interface {
	PublishAppointment(ctx context.Context, ev AppointmentEvent) error
}

// PasswordHasher turns plaintext passwords into stored hashes and back.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
