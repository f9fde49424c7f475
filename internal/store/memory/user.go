package memory

import (
	"context"
	"fmt"
	"sort"

	"medical-agenda/internal/model"
)

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUser(0, u); err != nil {
		return err
	}
	s.lastUser++
	u.ID = s.lastUser
	u.CreatedAt = s.now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", model.ErrUserNotFound, id)
	}
	return &u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[u.ID]
	if !ok {
		return fmt.Errorf("%w: id %d", model.ErrUserNotFound, u.ID)
	}
	if err := s.checkUser(u.ID, u); err != nil {
		return err
	}
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = s.now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%w: id %d", model.ErrUserNotFound, id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// checkUser mirrors uq_usuario_correo and the rol/especialidad foreign
// keys. Caller holds the lock.
func (s *Store) checkUser(selfID int64, u *model.User) error {
	for id, other := range s.users {
		if id != selfID && other.Email == u.Email {
			return fmt.Errorf("%w: %s", model.ErrDuplicateEmail, u.Email)
		}
	}
	if u.Profile == nil {
		return fmt.Errorf("%w: missing user type", model.ErrInvalidUser)
	}
	if id := u.Profile.RoleID(); id != nil {
		if _, ok := s.roles[*id]; !ok {
			return fmt.Errorf("%w: role %d does not exist", model.ErrInvalidUser, *id)
		}
	}
	if id := u.Profile.SpecialtyID(); id != nil {
		if _, ok := s.specialties[*id]; !ok {
			return fmt.Errorf("%w: specialty %d does not exist", model.ErrInvalidUser, *id)
		}
	}
	return nil
}
