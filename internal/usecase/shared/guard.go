package shared

import (
	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/pkg/errs"
)

// Authenticated fails with ErrUnauthenticated for an anonymous principal.
func Authenticated(p auth.Principal) error {
	if p.IsZero() {
		return errs.Mark(auth.ErrAnonymous, errs.ErrUnauthenticated)
	}
	return nil
}

// Authorize is auth.Authorize with the failure marked for transport.
func Authorize(p auth.Principal, roles ...user.Role) error {
	if err := Authenticated(p); err != nil {
		return err
	}
	if err := auth.Authorize(p, roles...); err != nil {
		return errs.Mark(err, errs.ErrForbidden)
	}
	return nil
}

// RepoFailure marks an unexpected repository error.
func RepoFailure(err error) error {
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
