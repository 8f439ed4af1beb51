package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supplyline/pricelist/internal/common"
)

func TestParseColumnMap(t *testing.T) {
	raw := []byte(`{
		"header_row_index": 1,
		"data_start_row_index": 2,
		"name_parts_col_indices": [0, 1],
		"price_col_index": 2,
		"stock_col_index": null
	}`)
	m, err := ParseColumnMap(raw, true)
	require.NoError(t, err)
	require.Equal(t, 1, m.HeaderRowIndex)
	require.Equal(t, 2, m.DataStartRowIndex)
	require.Equal(t, []int{0, 1}, m.NamePartsCols)
	require.NotNil(t, m.PriceColIndex)
	require.Equal(t, 2, *m.PriceColIndex)
	require.Nil(t, m.StockColIndex)
}

func TestParseColumnMapRejections(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		requirePrice bool
	}{
		{
			name:         "missing price column for price list",
			raw:          `{"header_row_index": 0, "data_start_row_index": 1, "name_parts_col_indices": [0]}`,
			requirePrice: true,
		},
		{
			name: "data start not after header",
			raw:  `{"header_row_index": 2, "data_start_row_index": 2, "name_parts_col_indices": [0], "price_col_index": 1}`,
		},
		{
			name: "empty name parts",
			raw:  `{"header_row_index": 0, "data_start_row_index": 1, "name_parts_col_indices": [], "price_col_index": 1}`,
		},
		{
			name: "negative index",
			raw:  `{"header_row_index": -1, "data_start_row_index": 1, "name_parts_col_indices": [0], "price_col_index": 1}`,
		},
		{
			name: "missing required field",
			raw:  `{"header_row_index": 0, "name_parts_col_indices": [0], "price_col_index": 1}`,
		},
		{
			name: "not json",
			raw:  `колонки не определены`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseColumnMap([]byte(tt.raw), tt.requirePrice)
			require.Error(t, err)
			require.ErrorIs(t, err, common.ErrMapInvalid)
		})
	}
}

func TestParseColumnMapWithoutPriceForRequest(t *testing.T) {
	raw := []byte(`{"header_row_index": 0, "data_start_row_index": 1, "name_parts_col_indices": [0]}`)
	m, err := ParseColumnMap(raw, false)
	require.NoError(t, err)
	require.Nil(t, m.PriceColIndex)
}
