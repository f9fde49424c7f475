package service_test

import (
	"context"
	"sync"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

// directory resolves user types from a fixed map; ids not in it are
// unknown.
type directory map[int64]model.UserType

func (d directory) ResolveRole(_ context.Context, id int64) (model.UserType, error) {
	if t, ok := d[id]; ok {
		return t, nil
	}
	return model.UserTypeUnknown, nil
}

type resolverFunc func(ctx context.Context, id int64) (model.UserType, error)

func (f resolverFunc) ResolveRole(ctx context.Context, id int64) (model.UserType, error) {
	return f(ctx, id)
}

type recorder struct {
	mu     sync.Mutex
	events []service.AppointmentEvent
	err    error
}

func (r *recorder) PublishAppointment(_ context.Context, ev service.AppointmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) kinds() []service.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]service.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

// plainHasher keeps tests fast; bcrypt is covered in the auth package.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "plain:" + pw, nil }
func (plainHasher) Compare(hash, pw string) bool   { return hash == "plain:"+pw }
