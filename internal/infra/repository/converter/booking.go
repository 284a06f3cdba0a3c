package converter

import (
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns matches the fields of BookingRow.
const BookingColumns = `id, user_id, event_id, package_id, status, booking_date,
	unit_price, discount_percent::text AS discount_percent, discount_amount, final_amount,
	currency, voucher_id, voucher_code, created_at, updated_at`

type BookingRow struct {
	ID              uuid.UUID   `db:"id"`
	UserID          uuid.UUID   `db:"user_id"`
	EventID         pgtype.UUID `db:"event_id"`
	PackageID       pgtype.UUID `db:"package_id"`
	Status          string      `db:"status"`
	BookingDate     pgtype.Date `db:"booking_date"`
	UnitPrice       int64       `db:"unit_price"`
	DiscountPercent string      `db:"discount_percent"`
	DiscountAmount  int64       `db:"discount_amount"`
	FinalAmount     int64       `db:"final_amount"`
	Currency        string      `db:"currency"`
	VoucherID       pgtype.UUID `db:"voucher_id"`
	VoucherCode     pgtype.Text `db:"voucher_code"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func BookingFromRow(row *BookingRow) (*booking.Booking, error) {
	product, err := catalog.NewProductRef(
		pgconv.UUIDPtrFromPgtype(row.EventID),
		pgconv.UUIDPtrFromPgtype(row.PackageID),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	pct, err := pgconv.DecimalFromText(row.DiscountPercent)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s discount", row.ID)
	}

	price := booking.PriceSnapshot{
		UnitPrice:       row.UnitPrice,
		DiscountPercent: pct,
		DiscountAmount:  row.DiscountAmount,
		FinalAmount:     row.FinalAmount,
		Currency:        row.Currency,
		VoucherID:       pgconv.UUIDPtrFromPgtype(row.VoucherID),
		VoucherCode:     pgconv.StringPtrFromPgtype(row.VoucherCode),
	}

	return booking.ReconstructBooking(
		row.ID,
		row.UserID,
		product,
		status,
		pgconv.DateFromPgtype(row.BookingDate),
		price,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

// BookingToArgs orders the insert arguments like BookingColumns.
func BookingToArgs(b *booking.Booking) []any {
	price := b.Price()
	return []any{
		b.ID(),
		b.UserID(),
		pgconv.UUIDPtrToPgtype(b.Product().EventID()),
		pgconv.UUIDPtrToPgtype(b.Product().PackageID()),
		b.Status().String(),
		pgconv.DateToPgtype(b.Date()),
		price.UnitPrice,
		price.DiscountPercent.String(),
		price.DiscountAmount,
		price.FinalAmount,
		price.Currency,
		pgconv.UUIDPtrToPgtype(price.VoucherID),
		pgconv.StringPtrToPgtype(price.VoucherCode),
		b.CreatedAt(),
		b.UpdatedAt(),
	}
}
