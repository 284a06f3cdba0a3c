package commands

import (
	"context"
	"log/slog"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/jwt"
	"tour-booking/internal/pkg/password"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrEmailTaken         = errs.New("email already registered")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrPasswordHashing    = errs.New("password hashing failed")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	Token string
	User  *queries.UserView
}

type AuthCommands interface {
	// Register creates a client account and signs it in.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authCommandsImpl struct {
	users      shared.UserRepository
	hasher     *password.Hasher
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(users shared.UserRepository, hasher *password.Hasher, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	name, err := user.NewName(in.Name)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	hash, err := a.hasher.Hash(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrPasswordHashing)
	}

	u := user.NewUser(credentials.Email(), name, hash, user.RoleClient, a.clock.Now())
	if err := a.users.Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.MarkAll(ErrEmailTaken, errs.ErrConflict)
		}
		return nil, shared.RepoFailure(err)
	}

	slog.Info("user registered", "user_id", u.ID(), "role", u.Role())
	return a.issue(u)
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pw string) (*AuthResult, error) {
	credentials, err := auth.NewCredentials(email, pw)
	if err != nil {
		// Same answer as a wrong password to avoid user enumeration
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
	}

	u, err := a.users.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
		}
		return nil, shared.RepoFailure(err)
	}

	if err := a.hasher.Compare(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
	}
	if !u.IsActive() {
		return nil, errs.Mark(ErrUserInactive, errs.ErrForbidden)
	}

	return a.issue(u)
}

func (a *authCommandsImpl) issue(u *user.User) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(u.ID(), u.Email().Value(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		Token: token,
		User:  queries.NewUserView(u),
	}, nil
}
