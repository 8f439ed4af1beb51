package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"plain integer", "4500", f(4500)},
		{"comma decimal", "1 234,56", f(1234.56)},
		{"dot thousands comma decimal", "1.234,56", f(1234.56)},
		{"comma thousands dot decimal", "1,234.56", f(1234.56)},
		{"nbsp thousands", "12 500,00", f(12500)},
		{"currency suffix", "4500 руб.", f(4500)},
		{"multiple dots are thousands", "1.234.567", f(1234567)},
		{"multiple commas are thousands", "1,234,567", f(1234567)},
		{"no digits", "договорная", nil},
		{"empty", "", nil},
		{"zero is retained", "0", f(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPrice(tt.in)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestNormalizeStock(t *testing.T) {
	lex := DefaultLexicon()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty defaults to available", "", "100"},
		{"unavailable word", "нет", "0"},
		{"on order", "под заказ", "0"},
		{"available word", "в наличии", "100"},
		{"plus sign", "+", "100"},
		{"bare number", "25", "25"},
		{"number with unit", "25 шт", "25"},
		{"unknown text defaults", "уточняйте", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeStock(tt.in, lex))
		})
	}
}

func TestPriceAndStockShapeScores(t *testing.T) {
	lex := DefaultLexicon()

	require.Greater(t, priceLikeScore("1500.50"), priceLikeScore("12"))
	require.Greater(t, priceLikeScore("4500 руб"), 0)
	require.Greater(t, stockLikeScore("в наличии", lex), stockLikeScore("1500.50", lex))
	require.Greater(t, stockLikeScore("12", lex), 0)
}

func f(v float64) *float64 { return &v }
