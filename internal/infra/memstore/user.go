package memstore

import (
	"context"
	"strings"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/infra"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

func (s *Store) Users() shared.UserRepository {
	return &userRepo{s: s}
}

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.users {
		if existing.Email().Value() == u.Email().Value() {
			return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
		}
	}
	r.s.data.users[u.ID()] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.data.users {
		if u.Email().Value() == needle {
			return &u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}
