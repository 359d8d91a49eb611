package db

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow/internal/domain/model"
	infraRepo "glow/internal/infra/repository"
	repo "glow/internal/repository"
)

// 実DBが無い環境ではskip
func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return dsn
}

func TestSeedDemo_Postgres(t *testing.T) {
	dsn := testDSN(t)
	ctx := context.Background()

	gdb, err := Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	_, err = SeedDemo(ctx, gdb)
	require.NoError(t, err)

	// 2回目は何もしない
	seeded, err := SeedDemo(ctx, gdb)
	require.NoError(t, err)
	assert.False(t, seeded)

	// gormを通さずに行を確認
	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = raw.Close() }()

	var products, categories int
	require.NoError(t, raw.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&products))
	require.NoError(t, raw.QueryRowContext(ctx, `SELECT count(*) FROM categories`).Scan(&categories))
	assert.GreaterOrEqual(t, products, 5)
	assert.GreaterOrEqual(t, categories, 4)

	var ingredients string
	require.NoError(t, raw.QueryRowContext(ctx, `SELECT ingredients::text FROM products WHERE id = '1'`).Scan(&ingredients))
	assert.Contains(t, ingredients, "Glycolic Acid")
}

func TestFavoritesUniqueIndex_Postgres(t *testing.T) {
	dsn := testDSN(t)
	ctx := context.Background()

	gdb, err := Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = raw.Close() }()

	_, err = raw.ExecContext(ctx, `DELETE FROM favorites WHERE user_name = 'it-user'`)
	require.NoError(t, err)

	insert := `INSERT INTO favorites (id, user_name, product_id, created_at) VALUES ($1, 'it-user', '1', now())`
	_, err = raw.ExecContext(ctx, insert, "it-fav-1")
	require.NoError(t, err)
	_, err = raw.ExecContext(ctx, insert, "it-fav-2")
	assert.Error(t, err)
}

func TestRecommendedOrder_NumericIDs_Postgres(t *testing.T) {
	dsn := testDSN(t)
	ctx := context.Background()

	gdb, err := Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	_, err = SeedDemo(ctx, gdb)
	require.NoError(t, err)

	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = raw.Close() }()
	_, err = raw.ExecContext(ctx, `INSERT INTO products (id, name, price, created_at) VALUES ('10', 'it-ten', 1, now()) ON CONFLICT DO NOTHING`)
	require.NoError(t, err)
	defer func() { _, _ = raw.ExecContext(ctx, `DELETE FROM products WHERE id = '10' AND name = 'it-ten'`) }()

	out, err := infraRepo.NewProductGormRepository(gdb).List(ctx, repo.ProductListQuery{Order: repo.OrderRecommended, Limit: 100})
	require.NoError(t, err)

	pos := map[model.ID]int{}
	for i, p := range out {
		pos[p.ID] = i
	}
	assert.Less(t, pos["2"], pos["10"])
}
