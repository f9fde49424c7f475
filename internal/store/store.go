package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medical-agenda/internal/model"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ErrNoMigration is returned by Migrate when the migration file is missing.
var ErrNoMigration = errors.New("migration file not found")

// Migrate applies the idempotent schema file at path.
func Migrate(ctx context.Context, pool *pgxpool.Pool, path string) error {
	migration, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoMigration, path)
		}
		return err
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}
	return nil
}

// SQLSTATE codes the store translates into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// classify turns constraint violations into domain errors by constraint
// name. Anything else is returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "uq_cita_paciente_slot":
			return fmt.Errorf("%w: the patient is already booked at that date and time", model.ErrDuplicateAppointment)
		case "uq_cita_medico_slot":
			return fmt.Errorf("%w: the doctor is already booked at that date and time", model.ErrDuplicateAppointment)
		case "uq_usuario_correo":
			return model.ErrDuplicateEmail
		}
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "usuario_rol_id_fkey":
			return fmt.Errorf("%w: role does not exist", model.ErrInvalidUser)
		case "usuario_especialidad_id_fkey":
			return fmt.Errorf("%w: specialty does not exist", model.ErrInvalidUser)
		}
	case pgCheckViolation:
		if pgErr.TableName == "usuario" {
			return fmt.Errorf("%w: %s", model.ErrInvalidUser, pgErr.ConstraintName)
		}
		if pgErr.TableName == "cita" {
			return fmt.Errorf("%w: %s", model.ErrInvalidRequest, pgErr.ConstraintName)
		}
	}
	return err
}
