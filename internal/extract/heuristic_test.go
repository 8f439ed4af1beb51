package extract

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supplyline/pricelist/internal/grid"
)

func testSink() *Sink {
	return NewSink(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func gridFromRows(rows [][]string) *grid.Grid {
	var cells []grid.Cell
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cells = append(cells, grid.Cell{Row: r, Col: c, Value: v})
		}
	}
	return grid.New(cells)
}

func TestHeuristicHeaderAndSections(t *testing.T) {
	g := gridFromRows([][]string{
		{"ООО Арматура-Трейд"},
		{"Прайс-лист от 01.08.2026"},
		{"Наименование", "Ду", "Цена", "Остаток"},
		{"Задвижки чугунные"},
		{"Задвижка 30ч6бр", "50", "4500", "12"},
		{"Задвижка 30ч39р", "80", "5200", "нет"},
		{"Итого"},
		{"Краны шаровые"},
		{"Кран 11б27п", "25", "900", "3"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	sink := testSink()
	raws, err := h.ExtractProducts(context.Background(), g, sink)
	require.NoError(t, err)
	require.Len(t, raws, 3)

	require.Equal(t, "Задвижки чугунные Задвижка 30ч6бр", raws[0].Name)
	require.Equal(t, "4500", raws[0].Price)
	require.Equal(t, "12", raws[0].Stock)

	// "Итого" must not become a section prefix.
	require.Equal(t, "Краны шаровые Кран 11б27п", raws[2].Name)
}

func TestHeuristicIsDeterministic(t *testing.T) {
	g := gridFromRows([][]string{
		{"Наименование", "Цена", "Остаток"},
		{"Задвижка 30ч6бр Ду50", "4500", "12"},
		{"Кран 11б27п Ду25", "900", "3"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	first, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	second, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestHeuristicNoHeaderDefaultsToFirstRow(t *testing.T) {
	g := gridFromRows([][]string{
		{"Задвижка 30ч6бр Ду50", "4500"},
		{"Кран 11б27п Ду25", "900"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	raws, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	// Row 0 is consumed as the assumed header.
	require.Len(t, raws, 1)
	require.Equal(t, "Кран 11б27п Ду25", raws[0].Name)
	require.Equal(t, "900", raws[0].Price)
}

func TestHeuristicStockColumnByShape(t *testing.T) {
	// The stock header carries no known keyword; the role must still be
	// resolved from the short-integer shape of the column.
	g := gridFromRows([][]string{
		{"Наименование", "Цена", "Своб. к отгрузке"},
		{"Задвижка 30ч6бр Ду50", "4500", "12"},
		{"Кран 11б27п Ду25", "900", "7"},
		{"Отвод 90 Ду57", "350", "3"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	raws, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 3)
	require.Equal(t, "12", raws[0].Stock)
	require.Equal(t, "4500", raws[0].Price)
	require.Equal(t, "3", raws[2].Stock)
}

func TestHeuristicLoneNonNameCellIsNotSubheader(t *testing.T) {
	g := gridFromRows([][]string{
		{"Наименование", "Цена", "Остаток"},
		{"Задвижка 30ч6бр", "4500", "12"},
		{"", "уточняйте", ""},
		{"Кран 11б27п", "900", "3"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	raws, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 2)
	// The stray price-column value must not become a section prefix.
	require.Equal(t, "Кран 11б27п", raws[1].Name)
}

func TestHeuristicSwappedPriceAndStockColumns(t *testing.T) {
	// Header says price then stock but the data is the other way around.
	g := gridFromRows([][]string{
		{"Наименование", "Цена", "Остаток"},
		{"Задвижка 30ч6бр", "5", "4500.50"},
		{"Задвижка 30ч39р", "12", "5200.00"},
		{"Кран 11б27п", "3", "900.00"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	raws, err := h.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 3)
	require.Equal(t, "4500.50", raws[0].Price)
	require.Equal(t, "5", raws[0].Stock)
}

func TestHeuristicItems(t *testing.T) {
	g := gridFromRows([][]string{
		{"Отвод 90 Ду57 - 10 шт"},
		{"Кран шаровой Ду25", "2"},
		{"ок"},
	})

	h := Heuristic{Lex: DefaultLexicon()}
	raws, err := h.ExtractItems(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 2)
	require.Equal(t, "Отвод 90 Ду57", raws[0].Name)
	require.Equal(t, "10", raws[0].Quantity)
	require.Equal(t, "Кран шаровой Ду25", raws[1].Name)
	require.Equal(t, "2", raws[1].Quantity)
}
