package converter

import (
	"time"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const UserColumns = `id, email, name, password_hash, role, is_active, created_at, updated_at`

type UserRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func UserFromRow(row *UserRow) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, errs.Wrapf(err, "user %s", row.ID)
	}
	name, err := user.NewName(row.Name)
	if err != nil {
		return nil, errs.Wrapf(err, "user %s", row.ID)
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, errs.Wrapf(err, "user %s", row.ID)
	}

	return user.ReconstructUser(
		row.ID,
		email,
		name,
		row.PasswordHash,
		role,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
