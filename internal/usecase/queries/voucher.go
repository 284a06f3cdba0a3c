package queries

import (
	"context"
	"strings"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEmptyVoucherCode = errs.New("voucher code is required")

type VoucherQueries interface {
	// Validate never fails for an unusable code; the reason is in the result.
	Validate(ctx context.Context, code string, referenceAmount *int64) (voucher.ValidationResult, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*VoucherView, error)
	List(ctx context.Context, p auth.Principal, filter shared.VoucherFilter) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	reader shared.VoucherReader
	clock  clock.Clock
}

func NewVoucherQueries(reader shared.VoucherReader, clock clock.Clock) VoucherQueries {
	return &voucherQueriesImpl{
		reader: reader,
		clock:  clock,
	}
}

func (q *voucherQueriesImpl) Validate(ctx context.Context, code string, referenceAmount *int64) (voucher.ValidationResult, error) {
	if strings.TrimSpace(code) == "" {
		return voucher.ValidationResult{}, errs.Mark(ErrEmptyVoucherCode, errs.ErrValidation)
	}
	if referenceAmount != nil && *referenceAmount < 0 {
		return voucher.ValidationResult{}, errs.Mark(voucher.ErrNegativeAmount, errs.ErrValidation)
	}

	v, err := q.reader.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return voucher.Rejected(voucher.ReasonNotFound), nil
		}
		return voucher.ValidationResult{}, shared.RepoFailure(err)
	}

	result, err := v.Evaluate(q.clock.Now(), referenceAmount)
	if err != nil {
		return voucher.ValidationResult{}, errs.Mark(err, errs.ErrValidation)
	}
	return result, nil
}

func (q *voucherQueriesImpl) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*VoucherView, error) {
	if err := shared.Authorize(p, user.RoleAdmin, user.RoleOperator); err != nil {
		return nil, err
	}

	v, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.ErrVoucherNotFound, errs.ErrNotFound)
		}
		return nil, shared.RepoFailure(err)
	}
	return NewVoucherView(v), nil
}

func (q *voucherQueriesImpl) List(ctx context.Context, p auth.Principal, filter shared.VoucherFilter) ([]*VoucherView, error) {
	if err := shared.Authorize(p, user.RoleAdmin, user.RoleOperator); err != nil {
		return nil, err
	}

	list, err := q.reader.List(ctx, filter)
	if err != nil {
		return nil, shared.RepoFailure(err)
	}

	views := make([]*VoucherView, 0, len(list))
	for _, v := range list {
		views = append(views, NewVoucherView(v))
	}
	return views, nil
}
