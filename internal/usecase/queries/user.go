package queries

import (
	"context"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"
)

var ErrUserInactive = errs.New("user inactive")

type UserQueries interface {
	GetCurrentUser(ctx context.Context, p auth.Principal) (*UserView, error)
}

type userQueriesImpl struct {
	users shared.UserRepository
}

func NewUserQueries(users shared.UserRepository) UserQueries {
	return &userQueriesImpl{
		users: users,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, p auth.Principal) (*UserView, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}

	u, err := q.users.FindByID(ctx, p.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.ErrUserNotFound, errs.ErrNotFound)
		}
		return nil, shared.RepoFailure(err)
	}

	if !u.IsActive() {
		return nil, errs.Mark(ErrUserInactive, errs.ErrForbidden)
	}
	return NewUserView(u), nil
}
