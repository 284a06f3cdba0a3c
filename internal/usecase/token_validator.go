package usecase

import (
	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/jwt"
)

var ErrMissingToken = errs.New("missing access token")

// TokenValidator turns a bearer credential into a principal for middleware.
// Every failure is marked ErrUnauthenticated.
type TokenValidator interface {
	Authenticate(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) Authenticate(tokenString string) (auth.Principal, error) {
	if tokenString == "" {
		return auth.Principal{}, errs.Mark(ErrMissingToken, errs.ErrUnauthenticated)
	}

	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, errs.Mark(err, errs.ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return auth.Principal{}, errs.Mark(err, errs.ErrUnauthenticated)
	}

	p, err := auth.NewPrincipal(claims.UserID, claims.Email, role)
	if err != nil {
		return auth.Principal{}, errs.Mark(err, errs.ErrUnauthenticated)
	}
	return p, nil
}
