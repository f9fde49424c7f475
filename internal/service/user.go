package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"medical-agenda/internal/model"
)

// UserRequest carries the fields of a create or update. SpecialtyID and
// RoleID are optional; which of them may be set depends on Type.
type UserRequest struct {
	Name        string
	Email       string
	Password    string
	Type        string
	SpecialtyID *int64
	RoleID      *int64
}

// UserView is a user together with its resolved reference entities.
type UserView struct {
	model.User
	Role      *model.Role
	Specialty *model.Specialty
}

type UserService struct {
	repo    UserRepository
	catalog Catalog
	hasher  PasswordHasher
	log     *slog.Logger
}

func NewUserService(repo UserRepository, catalog Catalog, hasher PasswordHasher, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{repo: repo, catalog: catalog, hasher: hasher, log: log}
}

func (s *UserService) Create(ctx context.Context, req UserRequest) (*UserView, error) {
	name, email := strings.TrimSpace(req.Name), normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nombre, correo and contrasena are required", model.ErrInvalidRequest)
	}
	profile, err := s.profile(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, 0, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{Name: name, Email: email, PasswordHash: hash, Profile: profile}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user.created", "id", u.ID, "type", profile.Type())
	return s.view(ctx, u)
}

func (s *UserService) Get(ctx context.Context, id int64) (*UserView, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, u)
}

func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for i := range users {
		v, err := s.view(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Update replaces name, email, type and references of an existing user.
// An empty password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id int64, req UserRequest) (*UserView, error) {
	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email := strings.TrimSpace(req.Name), normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: nombre and correo are required", model.ErrInvalidRequest)
	}
	if err := s.checkEmail(ctx, id, email); err != nil {
		return nil, err
	}
	profile, err := s.profile(ctx, req)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Email = email
	existing.Profile = profile
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		existing.PasswordHash = hash
	}
	if err := s.repo.UpdateUser(ctx, existing); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user.updated", "id", id, "type", profile.Type())
	return s.view(ctx, existing)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user.deleted", "id", id)
	return nil
}

// EnsureAdmin creates an ADMIN user with email unless one already exists.
// It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := s.repo.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	role := model.RoleIDAdmin
	_, err = s.Create(ctx, UserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Type:     string(model.UserTypeAdmin),
		RoleID:   &role,
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	return true, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Compare(u.PasswordHash, password) {
		return nil, model.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.catalog.Roles(ctx)
}

func (s *UserService) ListSpecialties(ctx context.Context) ([]model.Specialty, error) {
	return s.catalog.Specialties(ctx)
}

// profile applies the user type rules and checks that every reference the
// resulting profile carries exists in the catalog.
func (s *UserService) profile(ctx context.Context, req UserRequest) (model.Profile, error) {
	p, err := model.NewProfile(model.ParseUserType(req.Type), req.RoleID, req.SpecialtyID)
	if err != nil {
		return nil, err
	}

	if id := p.RoleID(); id != nil {
		r, err := s.catalog.Role(ctx, *id)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("%w: role %d does not exist", model.ErrInvalidUser, *id)
		}
	}
	if id := p.SpecialtyID(); id != nil {
		sp, err := s.catalog.Specialty(ctx, *id)
		if err != nil {
			return nil, err
		}
		if sp == nil {
			return nil, fmt.Errorf("%w: specialty %d does not exist", model.ErrInvalidUser, *id)
		}
	}
	return p, nil
}

// checkEmail fails when another user than selfID already owns email.
func (s *UserService) checkEmail(ctx context.Context, selfID int64, email string) error {
	other, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("%w: %s", model.ErrDuplicateEmail, email)
	}
	return nil
}

func (s *UserService) view(ctx context.Context, u *model.User) (*UserView, error) {
	v := &UserView{User: *u}
	if u.Profile == nil {
		return v, nil
	}
	if id := u.Profile.RoleID(); id != nil {
		r, err := s.catalog.Role(ctx, *id)
		if err != nil {
			return nil, err
		}
		v.Role = r
	}
	if id := u.Profile.SpecialtyID(); id != nil {
		sp, err := s.catalog.Specialty(ctx, *id)
		if err != nil {
			return nil, err
		}
		v.Specialty = sp
	}
	return v, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
