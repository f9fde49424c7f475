package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medical-agenda/internal/model"
)

func (s *Store) CreateAppointment(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slotTaken(0, a); err != nil {
		return err
	}
	s.lastAppointment++
	a.ID = s.lastAppointment
	a.CreatedAt = s.now().UTC()
	a.UpdatedAt = a.CreatedAt
	s.appointments[a.ID] = *a
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id int64) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, id)
	}
	return &a, nil
}

func (s *Store) ListAppointments(_ context.Context) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateAppointment(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.appointments[a.ID]
	if !ok {
		return fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, a.ID)
	}
	if err := s.slotTaken(a.ID, a); err != nil {
		return err
	}
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = s.now().UTC()
	s.appointments[a.ID] = *a
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, id)
	}
	delete(s.appointments, id)
	return nil
}

func (s *Store) AppointmentByPatientSlot(_ context.Context, patientID int64, date time.Time, clock time.Duration) (*model.Appointment, error) {
	return s.findSlot(func(a model.Appointment) bool {
		return a.PatientID == patientID && a.Date.Equal(date) && a.Time == clock
	}), nil
}

func (s *Store) AppointmentByDoctorSlot(_ context.Context, doctorID int64, date time.Time, clock time.Duration) (*model.Appointment, error) {
	return s.findSlot(func(a model.Appointment) bool {
		return a.DoctorID == doctorID && a.Date.Equal(date) && a.Time == clock
	}), nil
}

func (s *Store) findSlot(match func(model.Appointment) bool) *model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appointments {
		if match(a) {
			return &a
		}
	}
	return nil
}

// slotTaken mirrors the uq_cita_paciente_slot and uq_cita_medico_slot
// constraints. Caller holds the lock.
func (s *Store) slotTaken(selfID int64, a *model.Appointment) error {
	for id, other := range s.appointments {
		if id == selfID || !other.Date.Equal(a.Date) || other.Time != a.Time {
			continue
		}
		if other.PatientID == a.PatientID {
			return fmt.Errorf("%w: patient %d is already booked at that date and time", model.ErrDuplicateAppointment, a.PatientID)
		}
		if other.DoctorID == a.DoctorID {
			return fmt.Errorf("%w: doctor %d is already booked at that date and time", model.ErrDuplicateAppointment, a.DoctorID)
		}
	}
	return nil
}
