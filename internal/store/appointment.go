package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"medical-agenda/internal/model"
)

const appointmentColumns = `id, fecha, hora, estado, observaciones, paciente_id, medico_id, created_at, updated_at`

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cita (fecha, hora, estado, observaciones, paciente_id, medico_id)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, created_at, updated_at`,
		a.Date, clock(a.Time), string(a.Status), a.Notes, a.PatientID, a.DoctorID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return classify(err)
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	a, err := scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM cita WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, id)
	}
	return a, err
}

func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+appointmentColumns+` FROM cita ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE cita
		 SET fecha=$1, hora=$2, estado=$3, observaciones=$4, paciente_id=$5, medico_id=$6, updated_at=NOW()
		 WHERE id=$7
		 RETURNING created_at, updated_at`,
		a.Date, clock(a.Time), string(a.Status), a.Notes, a.PatientID, a.DoctorID, a.ID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, a.ID)
	}
	return classify(err)
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cita WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", model.ErrAppointmentNotFound, id)
	}
	return nil
}

func (s *Store) AppointmentByPatientSlot(ctx context.Context, patientID int64, date time.Time, at time.Duration) (*model.Appointment, error) {
	return s.appointmentBySlot(ctx, "paciente_id", patientID, date, at)
}

func (s *Store) AppointmentByDoctorSlot(ctx context.Context, doctorID int64, date time.Time, at time.Duration) (*model.Appointment, error) {
	return s.appointmentBySlot(ctx, "medico_id", doctorID, date, at)
}

// column is one of the two fixed participant columns, never user input.
func (s *Store) appointmentBySlot(ctx context.Context, column string, userID int64, date time.Time, at time.Duration) (*model.Appointment, error) {
	a, err := scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM cita
		 WHERE `+column+` = $1 AND fecha = $2 AND hora = $3`,
		userID, date, clock(at)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var (
		a      model.Appointment
		hora   pgtype.Time
		estado string
	)
	err := row.Scan(&a.ID, &a.Date, &hora, &estado, &a.Notes,
		&a.PatientID, &a.DoctorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Date = time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
	a.Time = time.Duration(hora.Microseconds) * time.Microsecond
	a.Status = model.Status(estado)
	return &a, nil
}

func clock(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}
