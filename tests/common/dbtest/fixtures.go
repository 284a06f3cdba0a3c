//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt of DefaultPassword
const (
	DefaultPassword     = "password123"
	defaultPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
)

// Reference catalog rows present after every reset.
var (
	SeedEventID   = uuid.MustParse("3f0a2a0e-9c1b-4d7e-8a51-0e7d1f4b9a10")
	SeedPackageID = uuid.MustParse("a4c8e2b6-1d3f-4e59-b7a0-92c6d8e1f320")
	// SeedPackagePrice makes percentage discounts easy to check by hand.
	SeedPackagePrice int64 = 1_000_000
	SeedEventPrice   int64 = 750_000
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING`,
		userID, email, "Test "+role, defaultPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestEvent(t *testing.T, db DBLike, name string, price int64, available bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO events (id, name, price, is_available) VALUES ($1, $2, $3, $4)",
		id, name, price, available)
	require.NoError(t, err)
	return id
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO events (id, name, price, is_available) VALUES ($1, 'Jazz Gunung Bromo', $2, true)
		ON CONFLICT (id) DO NOTHING`, SeedEventID, SeedEventPrice)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO packages (id, name, price, is_available) VALUES ($1, 'Komodo Island Hopping', $2, true)
		ON CONFLICT (id) DO NOTHING`, SeedPackageID, SeedPackagePrice)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
