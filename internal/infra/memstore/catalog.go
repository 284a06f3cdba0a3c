package memstore

import (
	"context"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/infra"
	"tour-booking/internal/usecase/shared"
)

func (s *Store) Catalog() shared.CatalogReader {
	return &catalogReader{s: s}
}

type catalogReader struct {
	s *Store
}

func (r *catalogReader) GetProduct(_ context.Context, ref catalog.ProductRef) (*catalog.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.data.products[ref]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return &p, nil
}
