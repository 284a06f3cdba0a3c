package components

import (
	"context"
	"log/slog"
	"time"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/infra/memstore"
	"tour-booking/internal/infra/repository"
	"tour-booking/internal/infra/uow"
	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/pkg/password"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

// Persistence exposes one backend through the ports the use cases consume.
type Persistence struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	Bookings   shared.BookingReader
	Vouchers   shared.VoucherReader
	Catalog    shared.CatalogReader
	Users      shared.UserRepository
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, hasher *password.Hasher) (Persistence, error) {
	if cfg.Store.UsesMemory() {
		return newMemoryPersistence(cfg.Store, hasher)
	}
	return newPostgresPersistence(lc, cfg.DB)
}

func newPostgresPersistence(lc fx.Lifecycle, cfg config.DBConfig) (Persistence, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg)
	if err != nil {
		return Persistence{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return Persistence{
		UnitOfWork: uow.NewPostgresUoW(pool),
		Bookings:   repository.NewBookingRepository(pool),
		Vouchers:   repository.NewVoucherRepository(pool),
		Catalog:    repository.NewCatalogRepository(pool),
		Users:      repository.NewUserRepository(pool),
	}, nil
}

// Fixed ids so local clients can book without a catalog admin surface.
var (
	DemoEventID   = uuid.MustParse("0b6f3c1e-2a64-4c55-9a43-3f1d1c2e7a01")
	DemoPackageID = uuid.MustParse("7d2e9a40-58c1-4b1f-8e3a-6c0f2b9d4e02")
)

func newMemoryPersistence(cfg config.StoreConfig, hasher *password.Hasher) (Persistence, error) {
	store := memstore.New()
	store.SeedProduct(catalog.Product{
		Ref:       catalog.ProductRef{Type: catalog.TypeEvent, ID: DemoEventID},
		Name:      "Bromo Sunrise Festival",
		Price:     750000,
		Available: true,
	})
	store.SeedProduct(catalog.Product{
		Ref:       catalog.ProductRef{Type: catalog.TypePackage, ID: DemoPackageID},
		Name:      "Bali 3D2N Explorer",
		Price:     1000000,
		Available: true,
	})

	if cfg.SeedAdminEmail != "" {
		if err := seedAdmin(store, cfg, hasher); err != nil {
			return Persistence{}, err
		}
	}
	slog.Warn("using in-memory store; data is lost on restart")

	return Persistence{
		UnitOfWork: store,
		Bookings:   store.Bookings(),
		Vouchers:   store.Vouchers(),
		Catalog:    store.Catalog(),
		Users:      store.Users(),
	}, nil
}

func seedAdmin(store *memstore.Store, cfg config.StoreConfig, hasher *password.Hasher) error {
	email, err := user.NewEmail(cfg.SeedAdminEmail)
	if err != nil {
		return errs.Wrap(err, "SEED_ADMIN_EMAIL")
	}
	if _, err := user.NewPassword(cfg.SeedAdminPassword); err != nil {
		return errs.Wrap(err, "SEED_ADMIN_PASSWORD")
	}
	hash, err := hasher.Hash(cfg.SeedAdminPassword)
	if err != nil {
		return errs.Wrap(err, "hash seed admin password")
	}
	name, err := user.NewName("Administrator")
	if err != nil {
		return err
	}

	store.SeedUser(user.NewUser(email, name, hash, user.RoleAdmin, time.Now()))
	return nil
}
