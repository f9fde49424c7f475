package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"medical-agenda/internal/model"
)

func (s *Store) Role(ctx context.Context, id int64) (*model.Role, error) {
	r := &model.Role{}
	err := s.pool.QueryRow(ctx, `SELECT id, nombre FROM rol WHERE id = $1`, id).Scan(&r.ID, &r.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) Specialty(ctx context.Context, id int64) (*model.Specialty, error) {
	sp := &model.Specialty{}
	err := s.pool.QueryRow(ctx, `SELECT id, nombre FROM especialidad WHERE id = $1`, id).Scan(&sp.ID, &sp.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Store) Roles(ctx context.Context) ([]model.Role, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, nombre FROM rol ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Role, error) {
		var r model.Role
		err := row.Scan(&r.ID, &r.Name)
		return r, err
	})
}

func (s *Store) Specialties(ctx context.Context) ([]model.Specialty, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, nombre FROM especialidad ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Specialty, error) {
		var sp model.Specialty
		err := row.Scan(&sp.ID, &sp.Name)
		return sp, err
	})
}
