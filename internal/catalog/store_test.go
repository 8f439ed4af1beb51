package catalog

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supplyline/pricelist/internal/extract"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := Open(context.Background(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func price(v float64) *float64 { return &v }

func TestReplaceForSupplier(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	n, err := store.ReplaceForSupplier(ctx, "АрмаТрейд", []extract.Product{
		{FullName: "Задвижка 30ч6бр Ду50", Price: price(4500), Stock: "12"},
		{FullName: "Фланцы Ду 25 ст.20", Price: price(780), Stock: "0"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "АрмаТрейд", records[0].Supplier)
	require.Equal(t, "50", records[0].Facets.Diameter)
	require.Equal(t, "Фланцы", records[1].Facets.Category)
	require.Equal(t, "20", records[1].Facets.Material)

	// A reload replaces the supplier's rows instead of appending.
	n, err = store.ReplaceForSupplier(ctx, "АрмаТрейд", []extract.Product{
		{FullName: "Кран 11б27п Ду25", Price: price(900), Stock: "3"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	count, err = store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestReplaceKeepsOtherSuppliers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.ReplaceForSupplier(ctx, "Первый", []extract.Product{
		{FullName: "Задвижка 30ч6бр Ду50", Price: price(4500), Stock: "12"},
	})
	require.NoError(t, err)
	_, err = store.ReplaceForSupplier(ctx, "Второй", []extract.Product{
		{FullName: "Кран 11б27п Ду25", Price: price(900), Stock: "3"},
	})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestNilPriceRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.ReplaceForSupplier(ctx, "АрмаТрейд", []extract.Product{
		{FullName: "Кран 11б27п Ду25", Price: nil, Stock: "100"},
	})
	require.NoError(t, err)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Nil(t, records[0].Price)
}

func TestSaveRequestItems(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	err := store.SaveRequestItems(ctx, "request.txt", []extract.RequestedItem{
		{FullName: "Отвод 90 Ду57", Quantity: 10},
		{FullName: "Кран шаровой Ду25", Quantity: 2},
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM request_items`).Scan(&n))
	require.Equal(t, 2, n)

	var name string
	var qty int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT name, quantity FROM request_items WHERE source = ? ORDER BY id`, "request.txt").Scan(&name, &qty))
	require.Equal(t, "Отвод 90 Ду57", name)
	require.Equal(t, 10, qty)
}

func TestSearchRanking(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.ReplaceForSupplier(ctx, "АрмаТрейд", []extract.Product{
		{FullName: "Задвижка 30ч6бр Ду50 чугунная", Price: price(4500), Stock: "12"},
		{FullName: "Задвижка 30ч39р Ду80 чугунная", Price: price(5200), Stock: "7"},
		{FullName: "Кран шаровой 11б27п Ду25", Price: price(900), Stock: "3"},
	})
	require.NoError(t, err)

	// Stemming matches the plural query against singular names; the Ду50
	// record wins on the diameter bonus.
	matches, err := store.Search(ctx, "задвижки чугунные Ду50", 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Задвижка 30ч6бр Ду50 чугунная", matches[0].Record.Name)
	require.Greater(t, matches[0].Score, matches[1].Score)

	matches, err = store.Search(ctx, "задвижки", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	matches, err = store.Search(ctx, "", 0)
	require.NoError(t, err)
	require.Empty(t, matches)
}
