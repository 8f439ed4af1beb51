package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/grid"
	"github.com/supplyline/pricelist/internal/llm"
)

func TestSpatialExtractProducts(t *testing.T) {
	g := grid.New([]grid.Cell{
		{Row: 0, Col: 0, Value: "Задвижки чугунные", Bold: true, Merged: true},
		{Row: 1, Col: 0, Value: "Задвижка 30ч6бр"},
		{Row: 1, Col: 1, Value: "4500"},
	})

	var gotPrompt string
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return `Вот результат: [{"full_name": "Задвижки чугунные Задвижка 30ч6бр", "price": "4500", "stock": ""}]`, nil
	})

	s := Spatial{Gen: gen}
	raws, err := s.ExtractProducts(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "Задвижки чугунные Задвижка 30ч6бр", raws[0].Name)
	require.Equal(t, "4500", raws[0].Price)

	// The prompt must carry the annotated cells verbatim.
	cellsJSON, err := json.Marshal(g.Cells())
	require.NoError(t, err)
	require.Contains(t, gotPrompt, string(cellsJSON))
	require.Contains(t, gotPrompt, `"is_bold":true`)
}

func TestSpatialNumericReplyFields(t *testing.T) {
	g := grid.New([]grid.Cell{{Row: 0, Col: 0, Value: "Кран"}})
	s := Spatial{Gen: fixedReply(`[{"name": "Кран 11б27п", "price": 900.5, "quantity": 2}]`)}

	raws, err := s.ExtractItems(context.Background(), g, testSink())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "Кран 11б27п", raws[0].Name)
	require.Equal(t, "900.5", raws[0].Price)
	require.Equal(t, "2", raws[0].Quantity)
}

func TestSpatialRejectsNonJSONReply(t *testing.T) {
	g := grid.New([]grid.Cell{{Row: 0, Col: 0, Value: "Кран"}})
	s := Spatial{Gen: fixedReply("в таблице нет товаров")}

	_, err := s.ExtractProducts(context.Background(), g, testSink())
	require.ErrorIs(t, err, common.ErrModelCall)
}
