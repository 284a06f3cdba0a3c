package repository

import (
	"context"
	"time"

	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/infra/repository/converter"
	"tour-booking/internal/pkg/pgconv"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertVoucherSQL = `INSERT INTO vouchers
		(id, code, discount_percent, description, valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateVoucherSQL = `UPDATE vouchers SET
		code = $2, discount_percent = $3::numeric, description = $4,
		valid_from = $5, valid_until = $6, usage_limit = $7, is_active = $8, updated_at = $9
		WHERE id = $1`

	deleteVoucherSQL = `DELETE FROM vouchers WHERE id = $1`

	selectVoucherByIDSQL   = `SELECT ` + converter.VoucherColumns + ` FROM vouchers WHERE id = $1`
	selectVoucherByCodeSQL = `SELECT ` + converter.VoucherColumns + ` FROM vouchers WHERE upper(code) = upper($1)`

	listVouchersSQL = `SELECT ` + converter.VoucherColumns + ` FROM vouchers
		WHERE ($1::boolean = false OR is_active)
		ORDER BY created_at DESC, id DESC`

	// The guard in the WHERE clause makes concurrent redemptions safe under
	// READ COMMITTED: the row lock serializes them and the loser re-evaluates.
	redeemVoucherSQL = `UPDATE vouchers SET used_count = used_count + 1, updated_at = $2
		WHERE id = $1 AND (usage_limit = 0 OR used_count < usage_limit)
		RETURNING ` + converter.VoucherColumns

	voucherExistsSQL = `SELECT EXISTS (SELECT 1 FROM vouchers WHERE id = $1)`
)

type VoucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(db db.DBTX) *VoucherRepository {
	return &VoucherRepository{db: db}
}

var (
	_ shared.VoucherRepository = (*VoucherRepository)(nil)
	_ shared.VoucherReader     = (*VoucherRepository)(nil)
)

func (r *VoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	_, err := r.db.Exec(ctx, insertVoucherSQL,
		v.ID(), v.Code().String(), v.Discount().String(), v.Description(),
		v.ValidFrom(), v.ValidUntil(), v.UsageLimit(), v.UsedCount(), v.IsActive(),
		v.CreatedAt(), v.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	tag, err := r.db.Exec(ctx, updateVoucherSQL,
		v.ID(), v.Code().String(), v.Discount().String(), v.Description(),
		v.ValidFrom(), v.ValidUntil(), v.UsageLimit(), v.IsActive(), v.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteVoucherSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	return r.findOne(ctx, "failed to find voucher by ID", selectVoucherByIDSQL, id)
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	return r.findOne(ctx, "failed to find voucher by code", selectVoucherByCodeSQL, voucher.NormalizeCode(code))
}

func (r *VoucherRepository) List(ctx context.Context, filter shared.VoucherFilter) ([]*voucher.Voucher, error) {
	rows, _ := r.db.Query(ctx, listVouchersSQL, filter.ActiveOnly)
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.VoucherRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}

	out, err := converter.VouchersFromRows(list)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert voucher row", err)
	}
	return out, nil
}

func (r *VoucherRepository) Redeem(ctx context.Context, id uuid.UUID, at time.Time) (*voucher.Voucher, error) {
	rows, _ := r.db.Query(ctx, redeemVoucherSQL, id, at)
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[converter.VoucherRow])
	if err == nil {
		v, convErr := converter.VoucherFromRow(row)
		if convErr != nil {
			return nil, infra.WrapRepoErr("failed to convert voucher row", convErr)
		}
		return v, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to redeem voucher", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, voucherExistsSQL, id).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr("failed to check voucher", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("voucher usage limit reached", voucher.ErrUsageExhausted, infra.KindConflict)
}

func (r *VoucherRepository) findOne(ctx context.Context, msg, query string, arg any) (*voucher.Voucher, error) {
	rows, _ := r.db.Query(ctx, query, arg)
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[converter.VoucherRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}

	v, err := converter.VoucherFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert voucher row", err)
	}
	return v, nil
}
