package pricing

import (
	"context"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type QuoteInput struct {
	EventID     *uuid.UUID
	PackageID   *uuid.UUID
	VoucherCode *string
}

// QuoteService prices a product for a caller without persisting anything.
type QuoteService interface {
	Quote(ctx context.Context, p auth.Principal, in QuoteInput) (*Quote, error)
}

type quoteServiceImpl struct {
	resolver Resolver
}

func NewQuoteService(resolver Resolver) QuoteService {
	return &quoteServiceImpl{resolver: resolver}
}

func (s *quoteServiceImpl) Quote(ctx context.Context, p auth.Principal, in QuoteInput) (*Quote, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}

	ref, err := catalog.NewProductRef(in.EventID, in.PackageID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidProduct)
	}
	return s.resolver.Resolve(ctx, ref, in.VoucherCode)
}
