package repository

import (
	"context"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/pgconv"
	"tour-booking/internal/usecase/shared"
)

const (
	selectEventSQL   = `SELECT name, price, is_available FROM events WHERE id = $1`
	selectPackageSQL = `SELECT name, price, is_available FROM packages WHERE id = $1`
)

// CatalogRepository reads the event and package tables owned by the catalog.
type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(db db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ shared.CatalogReader = (*CatalogRepository)(nil)

func (r *CatalogRepository) GetProduct(ctx context.Context, ref catalog.ProductRef) (*catalog.Product, error) {
	var query string
	switch ref.Type {
	case catalog.TypeEvent:
		query = selectEventSQL
	case catalog.TypePackage:
		query = selectPackageSQL
	default:
		return nil, infra.WrapRepoErr("unknown product type", errs.Wrap(catalog.ErrUnknownType, ref.String()), infra.KindNotFound)
	}

	p := &catalog.Product{Ref: ref}
	err := r.db.QueryRow(ctx, query, ref.ID).Scan(&p.Name, &p.Price, &p.Available)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}
