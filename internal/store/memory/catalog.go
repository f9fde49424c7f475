package memory

import (
	"context"
	"sort"

	"medical-agenda/internal/model"
)

func (s *Store) Role(_ context.Context, id int64) (*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) Specialty(_ context.Context, id int64) (*model.Specialty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.specialties[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (s *Store) Roles(_ context.Context) ([]model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Specialties(_ context.Context) ([]model.Specialty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Specialty, 0, len(s.specialties))
	for _, sp := range s.specialties {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
