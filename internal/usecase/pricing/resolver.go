package pricing

import (
	"context"
	"fmt"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherValidator is the part of the voucher engine the resolver needs.
type VoucherValidator interface {
	Validate(ctx context.Context, code string, referenceAmount *int64) (voucher.ValidationResult, error)
}

type Quote struct {
	Product         catalog.ProductRef
	ProductName     string
	UnitPrice       int64
	DiscountPercent decimal.Decimal
	DiscountAmount  int64
	FinalAmount     int64
	Currency        string
	VoucherID       *uuid.UUID
	VoucherCode     *string
}

// Snapshot freezes the quote for storage on a booking.
func (q *Quote) Snapshot() booking.PriceSnapshot {
	return booking.PriceSnapshot{
		UnitPrice:       q.UnitPrice,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		FinalAmount:     q.FinalAmount,
		Currency:        q.Currency,
		VoucherID:       q.VoucherID,
		VoucherCode:     q.VoucherCode,
	}
}

// VoucherRejectedError carries the validation result of a code that cannot be
// applied.
type VoucherRejectedError struct {
	Result voucher.ValidationResult
}

func (e *VoucherRejectedError) Error() string {
	return fmt.Sprintf("voucher rejected: %s", e.Result.Reason.Message())
}

type Resolver interface {
	Resolve(ctx context.Context, ref catalog.ProductRef, voucherCode *string) (*Quote, error)
}

type resolverImpl struct {
	catalog  shared.CatalogReader
	vouchers VoucherValidator
}

func NewResolver(catalog shared.CatalogReader, vouchers VoucherValidator) Resolver {
	return &resolverImpl{
		catalog:  catalog,
		vouchers: vouchers,
	}
}

func (r *resolverImpl) Resolve(ctx context.Context, ref catalog.ProductRef, voucherCode *string) (*Quote, error) {
	product, err := r.catalog.GetProduct(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.ErrProductNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !product.Available {
		return nil, errs.Mark(errs.ErrProductUnavailable, errs.ErrValidation)
	}

	quote := &Quote{
		Product:         ref,
		ProductName:     product.Name,
		UnitPrice:       product.Price,
		DiscountPercent: decimal.Zero,
		FinalAmount:     product.Price,
		Currency:        booking.CurrencyIDR,
	}
	if voucherCode == nil || *voucherCode == "" {
		return quote, nil
	}

	price := product.Price
	result, err := r.vouchers.Validate(ctx, *voucherCode, &price)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		kind := errs.ErrValidation
		if result.Reason == voucher.ReasonUsageLimitReached {
			kind = errs.ErrLimitExceeded
		}
		return nil, errs.Mark(&VoucherRejectedError{Result: result}, kind)
	}

	code := result.Code
	quote.DiscountPercent = *result.DiscountPercent
	quote.DiscountAmount = *result.DiscountAmount
	quote.FinalAmount = *result.FinalAmount
	quote.VoucherID = result.VoucherID
	quote.VoucherCode = &code
	return quote, nil
}
