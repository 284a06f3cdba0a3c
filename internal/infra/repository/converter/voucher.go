package converter

import (
	"time"

	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const VoucherColumns = `id, code, discount_percent::text AS discount_percent, description,
	valid_from, valid_until, usage_limit, used_count, is_active, created_at, updated_at`

type VoucherRow struct {
	ID              uuid.UUID `db:"id"`
	Code            string    `db:"code"`
	DiscountPercent string    `db:"discount_percent"`
	Description     string    `db:"description"`
	ValidFrom       time.Time `db:"valid_from"`
	ValidUntil      time.Time `db:"valid_until"`
	UsageLimit      int       `db:"usage_limit"`
	UsedCount       int       `db:"used_count"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func VoucherFromRow(row *VoucherRow) (*voucher.Voucher, error) {
	d, err := pgconv.DecimalFromText(row.DiscountPercent)
	if err != nil {
		return nil, errs.Wrapf(err, "voucher %s discount", row.ID)
	}
	pct, err := voucher.NewPercent(d)
	if err != nil {
		return nil, errs.Wrapf(err, "voucher %s discount", row.ID)
	}

	return voucher.ReconstructVoucher(
		row.ID,
		voucher.Code(row.Code),
		pct,
		row.Description,
		row.ValidFrom,
		row.ValidUntil,
		row.UsageLimit,
		row.UsedCount,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func VouchersFromRows(rows []*VoucherRow) ([]*voucher.Voucher, error) {
	out := make([]*voucher.Voucher, 0, len(rows))
	for _, row := range rows {
		v, err := VoucherFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
