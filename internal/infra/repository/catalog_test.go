//go:build unit

package repository

import (
	"context"
	"testing"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_GetProduct(t *testing.T) {
	id := uuid.New()

	t.Run("reads the table matching the product type", func(t *testing.T) {
		mockDB := new(MockDBTX)
		mockDB.On("QueryRow", mock.Anything, selectPackageSQL, []interface{}{id}).Return(funcRow(func(dest ...any) error {
			*dest[0].(*string) = "Komodo Island Hopping"
			*dest[1].(*int64) = 1_000_000
			*dest[2].(*bool) = true
			return nil
		}))

		p, err := NewCatalogRepository(mockDB).GetProduct(context.Background(), catalog.ProductRef{Type: catalog.TypePackage, ID: id})

		require.NoError(t, err)
		assert.Equal(t, "Komodo Island Hopping", p.Name)
		assert.Equal(t, int64(1_000_000), p.Price)
		assert.True(t, p.Available)
		mockDB.AssertExpectations(t)
	})

	t.Run("missing event is not found", func(t *testing.T) {
		mockDB := new(MockDBTX)
		mockDB.On("QueryRow", mock.Anything, selectEventSQL, []interface{}{id}).Return(funcRow(func(...any) error {
			return pgx.ErrNoRows
		}))

		_, err := NewCatalogRepository(mockDB).GetProduct(context.Background(), catalog.ProductRef{Type: catalog.TypeEvent, ID: id})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("unknown type never hits the database", func(t *testing.T) {
		mockDB := new(MockDBTX)

		_, err := NewCatalogRepository(mockDB).GetProduct(context.Background(), catalog.ProductRef{Type: "tour", ID: id})

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		mockDB.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
	})
}
