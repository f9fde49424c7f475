// Package memory is an in-process implementation of the service ports. It
// enforces the same unique slots, unique email and reference checks as the
// postgres schema, so it can stand in for the database in tests and local
// runs.
package memory

import (
	"sync"
	"time"

	"medical-agenda/internal/model"
)

type Store struct {
	mu sync.RWMutex

	lastAppointment int64
	lastUser        int64
	appointments    map[int64]model.Appointment
	users           map[int64]model.User
	roles           map[int64]model.Role
	specialties     map[int64]model.Specialty

	now func() time.Time
}

// New returns an empty store seeded with the same roles and specialties
// as the usuarios schema.
func New() *Store {
	s := &Store{
		appointments: make(map[int64]model.Appointment),
		users:        make(map[int64]model.User),
		roles:        make(map[int64]model.Role),
		specialties:  make(map[int64]model.Specialty),
		now:          time.Now,
	}
	for _, r := range []model.Role{
		{ID: model.RoleIDAdmin, Name: "ADMIN"},
		{ID: model.RoleIDDoctor, Name: "MEDICO"},
		{ID: model.RoleIDPatient, Name: "PACIENTE"},
	} {
		s.roles[r.ID] = r
	}
	for _, sp := range []model.Specialty{
		{ID: 1, Name: "Medicina General"},
		{ID: 2, Name: "Pediatría"},
		{ID: 3, Name: "Cardiología"},
		{ID: 4, Name: "Dermatología"},
	} {
		s.specialties[sp.ID] = sp
	}
	return s
}
