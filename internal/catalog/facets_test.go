package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFacets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Facets
	}{
		{
			name: "flange with diameter and material",
			in:   "Фланцы Ду 25 ст.20",
			want: Facets{Category: "Фланцы", Diameter: "25", Material: "20"},
		},
		{
			name: "tee with pressure execution and standard",
			in:   "Тройники 25-16-В исп.В ГОСТ 17376-2001",
			want: Facets{
				Category:  "Тройники",
				Pressure:  "16",
				Execution: "В",
				Standard:  "ГОСТ 17376-2001",
				Extra:     "25-16-В",
			},
		},
		{
			name: "compact diameter",
			in:   "Отводы Ду57",
			want: Facets{Category: "Отводы", Diameter: "57"},
		},
		{
			name: "category must lead",
			in:   "Гнутые отводы Ду57",
			want: Facets{Diameter: "57"},
		},
		{
			name: "nothing recognized",
			in:   "Кран шаровой латунный",
			want: Facets{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseFacets(tt.in))
		})
	}
}
