package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"medical-agenda/internal/model"
)

const userColumns = `id, nombre, correo, contrasena, tipo, rol_id, especialidad_id, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO usuario (nombre, correo, contrasena, tipo, rol_id, especialidad_id)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, string(u.Profile.Type()), u.Profile.RoleID(), u.Profile.SpecialtyID(),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return classify(err)
}

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuario WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", model.ErrUserNotFound, id)
	}
	return u, err
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM usuario ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE usuario
		 SET nombre=$1, correo=$2, contrasena=$3, tipo=$4, rol_id=$5, especialidad_id=$6, updated_at=NOW()
		 WHERE id=$7
		 RETURNING created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, string(u.Profile.Type()), u.Profile.RoleID(), u.Profile.SpecialtyID(), u.ID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: id %d", model.ErrUserNotFound, u.ID)
	}
	return classify(err)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM usuario WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", model.ErrUserNotFound, id)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuario WHERE correo = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u           model.User
		tipo        string
		roleID      *int64
		specialtyID *int64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &tipo,
		&roleID, &specialtyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Profile = model.RestoreProfile(model.UserType(tipo), roleID, specialtyID)
	return &u, nil
}
