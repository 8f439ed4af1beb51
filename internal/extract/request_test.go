package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitNameQuantity(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantQty  string
	}{
		{"unit suffix", "Отвод 90 Ду57 - 10 шт", "Отвод 90 Ду57", "10"},
		{"unit suffix with dot", "Кран шаровой Ду25 2 шт.", "Кран шаровой Ду25", "2"},
		{"trailing bare number", "Задвижка 30ч6бр Ду50 4", "Задвижка 30ч6бр Ду50", "4"},
		{"large trailing number kept in name", "Фланец ГОСТ 12820", "Фланец ГОСТ 12820", ""},
		{"no quantity", "Кран шаровой латунный", "Кран шаровой латунный", ""},
		{"too short", "кр25", "", ""},
		{"price line skipped", "Цена с НДС, руб", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, qty := SplitNameQuantity(tt.line)
			require.Equal(t, tt.wantName, name)
			require.Equal(t, tt.wantQty, qty)
		})
	}
}
