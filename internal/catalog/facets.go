// Package catalog persists extracted products into a SQLite store with
// facet columns derived from the product name, and answers ranked
// free-text searches over them.
package catalog

import (
	"regexp"
	"strings"
)

// Facets are the searchable characteristics parsed out of a product name.
// All values are kept as text: diameters and pressures appear with units and
// suffixes too often for numeric columns to be safe.
type Facets struct {
	Category  string
	Diameter  string
	Material  string
	Pressure  string
	Execution string
	Standard  string
	Extra     string
}

var (
	reCategory  = regexp.MustCompile(`^(Фланцы|Отводы|Переходы|Заглушки|Тройники)(?:\s+|$)`)
	reDiameter  = regexp.MustCompile(`Ду\s*(\d+)`)
	reMaterial  = regexp.MustCompile(`(?i)(?:ст\.|сталь)\s*(\d+|[\p{L}\d]+)`)
	rePressure  = regexp.MustCompile(`-(\d+)-`)
	reExecution = regexp.MustCompile(`исп\.([\p{L}\d]+)`)
	reStandard  = regexp.MustCompile(`(ГОСТ\s+[\d\-]+)`)
	reExtra     = regexp.MustCompile(`\d+-\d+-[\p{L}\d]+`)
)

// ParseFacets extracts the characteristics of a product from its full name.
// Missing facets stay empty; nothing here fails.
func ParseFacets(name string) Facets {
	var f Facets
	if m := reCategory.FindStringSubmatch(name); m != nil {
		f.Category = m[1]
	}
	if m := reDiameter.FindStringSubmatch(name); m != nil {
		f.Diameter = m[1]
	}
	if m := reMaterial.FindStringSubmatch(name); m != nil {
		f.Material = strings.ToLower(m[1])
	}
	if m := rePressure.FindStringSubmatch(name); m != nil {
		f.Pressure = m[1]
	}
	if m := reExecution.FindStringSubmatch(name); m != nil {
		f.Execution = m[1]
	}
	if m := reStandard.FindStringSubmatch(name); m != nil {
		f.Standard = m[1]
	}
	if m := reExtra.FindString(name); m != "" {
		f.Extra = m
	}
	return f
}
