package repository

import (
	"context"
	"strings"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/infra/repository/converter"
	"tour-booking/internal/pkg/pgconv"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertUserSQL = `INSERT INTO users (` + converter.UserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	selectUserByIDSQL    = `SELECT ` + converter.UserColumns + ` FROM users WHERE id = $1`
	selectUserByEmailSQL = `SELECT ` + converter.UserColumns + ` FROM users WHERE email = $1`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

var _ shared.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(), u.Email().Value(), u.Name().String(), u.PasswordHash(),
		u.Role().String(), u.IsActive(), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, "failed to find user by ID", selectUserByIDSQL, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "failed to find user by email", selectUserByEmailSQL, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) findOne(ctx context.Context, msg, query string, arg any) (*user.User, error) {
	rows, _ := r.db.Query(ctx, query, arg)
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[converter.UserRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}

	u, err := converter.UserFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert user row", err)
	}
	return u, nil
}
