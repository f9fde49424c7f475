package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medical-agenda/internal/model"
)

// AppointmentRequest is the caller-supplied part of an appointment. Date,
// Time and Status arrive as wire strings and are validated here.
type AppointmentRequest struct {
	PatientID int64
	DoctorID  int64
	Date      string
	Time      string
	Status    string
	Notes     string
}

type AppointmentService struct {
	repo   AppointmentRepository
	users  RoleResolver
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

func NewAppointmentService(repo AppointmentRepository, users RoleResolver, events EventPublisher, log *slog.Logger) *AppointmentService {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentService{repo: repo, users: users, events: events, log: log, now: time.Now}
}

// Create books a new appointment. The stored status is always
// model.StatusPending, whatever the request carried.
func (s *AppointmentService) Create(ctx context.Context, req AppointmentRequest) (*model.Appointment, error) {
	date, clock, err := parseSlot(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, req.PatientID, req.DoctorID); err != nil {
		return nil, err
	}
	if err := s.checkAvailability(ctx, 0, req.PatientID, req.DoctorID, date, clock); err != nil {
		return nil, err
	}

	a := &model.Appointment{
		Date:      date,
		Time:      clock,
		Status:    model.StatusPending,
		Notes:     req.Notes,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "appointment.created",
		"id", a.ID, "patientId", a.PatientID, "doctorId", a.DoctorID)
	s.publish(ctx, EventAppointmentCreated, *a)
	return a, nil
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

// Update replaces the mutable fields of an existing appointment. Unlike
// Create, the status is taken from the request as is.
func (s *AppointmentService) Update(ctx context.Context, id int64, req AppointmentRequest) (*model.Appointment, error) {
	existing, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	date, clock, err := parseSlot(req)
	if err != nil {
		return nil, err
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, req.PatientID, req.DoctorID); err != nil {
		return nil, err
	}
	// a slot held by the appointment itself is not a conflict
	if err := s.checkAvailability(ctx, id, req.PatientID, req.DoctorID, date, clock); err != nil {
		return nil, err
	}

	existing.Date = date
	existing.Time = clock
	existing.Status = status
	existing.Notes = req.Notes
	existing.PatientID = req.PatientID
	existing.DoctorID = req.DoctorID
	if err := s.repo.UpdateAppointment(ctx, existing); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "appointment.updated", "id", id, "status", status)
	s.publish(ctx, EventAppointmentUpdated, *existing)
	return existing, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "appointment.deleted", "id", id)
	s.publish(ctx, EventAppointmentDeleted, *a)
	return nil
}

func (s *AppointmentService) checkParticipants(ctx context.Context, patientID, doctorID int64) error {
	t, err := s.users.ResolveRole(ctx, patientID)
	if err != nil {
		return err
	}
	if t != model.UserTypePatient {
		return fmt.Errorf("%w: id %d does not belong to a patient", model.ErrInvalidPatient, patientID)
	}

	t, err = s.users.ResolveRole(ctx, doctorID)
	if err != nil {
		return err
	}
	if t != model.UserTypeDoctor {
		return fmt.Errorf("%w: id %d does not belong to a doctor", model.ErrInvalidDoctor, doctorID)
	}
	return nil
}

// checkAvailability rejects a slot already taken by the patient or the
// doctor. selfID is the appointment being updated, 0 on create.
func (s *AppointmentService) checkAvailability(ctx context.Context, selfID, patientID, doctorID int64, date time.Time, clock time.Duration) error {
	taken, err := s.repo.AppointmentByPatientSlot(ctx, patientID, date, clock)
	if err != nil {
		return err
	}
	if taken != nil && taken.ID != selfID {
		return fmt.Errorf("%w: patient %d already has an appointment on %s at %s",
			model.ErrDuplicateAppointment, patientID, date.Format(model.DateLayout), model.FormatClock(clock))
	}

	taken, err = s.repo.AppointmentByDoctorSlot(ctx, doctorID, date, clock)
	if err != nil {
		return err
	}
	if taken != nil && taken.ID != selfID {
		return fmt.Errorf("%w: doctor %d already has an appointment on %s at %s",
			model.ErrDuplicateAppointment, doctorID, date.Format(model.DateLayout), model.FormatClock(clock))
	}
	return nil
}

func (s *AppointmentService) publish(ctx context.Context, kind EventKind, a model.Appointment) {
	if s.events == nil {
		return
	}
	ev := AppointmentEvent{Kind: kind, Appointment: a, At: s.now().UTC()}
	if err := s.events.PublishAppointment(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "appointment.event.publish_failed",
			"id", a.ID, "kind", kind, "error", err.Error())
	}
}

func parseSlot(req AppointmentRequest) (time.Time, time.Duration, error) {
	if req.PatientID <= 0 || req.DoctorID <= 0 {
		return time.Time{}, 0, fmt.Errorf("%w: pacienteId and medicoId are required", model.ErrInvalidRequest)
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, 0, err
	}
	clock, err := model.ParseClock(req.Time)
	if err != nil {
		return time.Time{}, 0, err
	}
	return date, clock, nil
}
