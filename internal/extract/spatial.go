package extract

import (
	"context"
	"encoding/json"

	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/grid"
	"github.com/supplyline/pricelist/internal/llm"
)

// Spatial is the Level 1 extractor: the entire annotated grid goes to the
// model in one call and the items come back directly. Coordinates plus the
// bold and merged flags let the model resolve section structure the way a
// human reading the sheet would. The level only runs on styled formats;
// plain text grids carry no signal worth the token cost.
type Spatial struct {
	Gen llm.Generator
}

// ExtractProducts runs the one-shot price-list extraction.
func (s Spatial) ExtractProducts(ctx context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	return s.extract(ctx, g, sink, SpatialProductsPrompt)
}

// ExtractItems runs the one-shot client-request extraction.
func (s Spatial) ExtractItems(ctx context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	return s.extract(ctx, g, sink, SpatialItemsPrompt)
}

func (s Spatial) extract(ctx context.Context, g *grid.Grid, sink *Sink, prompt func([]byte) string) ([]RawItem, error) {
	cellsJSON, err := json.Marshal(g.Cells())
	if err != nil {
		return nil, common.WrapError(common.ErrInvalidInput, "marshal grid cells")
	}
	sink.Logf("пространственный: передано ячеек: %d", g.Len())

	reply, err := s.Gen.Generate(ctx, prompt(cellsJSON))
	if err != nil {
		return nil, err
	}
	var items []RawItem
	if !llm.DecodeArray(reply, &items) {
		return nil, common.WrapError(common.ErrModelCall, "reply carries no JSON array")
	}
	sink.Logf("пространственный: извлечено записей: %d", len(items))
	return items, nil
}
