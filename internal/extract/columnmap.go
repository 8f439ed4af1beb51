package extract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/supplyline/pricelist/internal/common"
)

// ColumnMap is the structural description of a price-list sheet produced by
// the Level 2 model call: where the header is, where data starts, and which
// columns carry name parts, price and stock. It is validated against a JSON
// Schema before any row is read, so a malformed map fails the level instead
// of producing garbage rows.
type ColumnMap struct {
	HeaderRowIndex    int   `json:"header_row_index"`
	DataStartRowIndex int   `json:"data_start_row_index"`
	NamePartsCols     []int `json:"name_parts_col_indices"`
	PriceColIndex     *int  `json:"price_col_index"`
	StockColIndex     *int  `json:"stock_col_index"`
}

const columnMapSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"header_row_index":       {"type": "integer", "minimum": 0},
		"data_start_row_index":   {"type": "integer", "minimum": 0},
		"name_parts_col_indices": {"type": "array", "items": {"type": "integer", "minimum": 0}, "minItems": 1},
		"price_col_index":        {"type": ["integer", "null"], "minimum": 0},
		"stock_col_index":        {"type": ["integer", "null"], "minimum": 0}
	},
	"required": ["header_row_index", "data_start_row_index", "name_parts_col_indices"]
}`

var columnMapSchema = jsonschema.MustCompileString("columnmap.json", columnMapSchemaJSON)

// ParseColumnMap decodes and validates a model reply into a ColumnMap.
// requirePrice is set for price lists, where a map without a price column is
// unusable and must fail the level.
func ParseColumnMap(raw []byte, requirePrice bool) (*ColumnMap, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.WrapError(common.ErrMapInvalid, fmt.Sprintf("decode column map: %v", err))
	}
	if err := columnMapSchema.Validate(doc); err != nil {
		return nil, common.WrapError(common.ErrMapInvalid, fmt.Sprintf("column map schema: %v", err))
	}

	var m ColumnMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, common.WrapError(common.ErrMapInvalid, fmt.Sprintf("unmarshal column map: %v", err))
	}
	if m.DataStartRowIndex <= m.HeaderRowIndex {
		return nil, common.WrapError(common.ErrMapInvalid, "data start must follow header row")
	}
	if requirePrice && m.PriceColIndex == nil {
		return nil, common.WrapError(common.ErrMapInvalid, "price column is required")
	}
	return &m, nil
}
