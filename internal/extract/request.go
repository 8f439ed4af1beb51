package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/grid"
	"github.com/supplyline/pricelist/internal/llm"
)

// Level names are user-visible: they appear verbatim in FinalMethod and in
// the cascade log.
const (
	LevelSpatial    = "Пространственный анализ"
	LevelStructural = "Структурный анализ"
	LevelHeuristic  = "Эвристический анализ"
)

var (
	reQtySuffix = regexp.MustCompile(`(\d+)\s*(?:шт|штук|компл|ед|м|тонн|кг)\.?\s*$`)
	reLastNum   = regexp.MustCompile(`(\d+)\s*$`)
)

// NewPriceListCascade wires the three price-list levels onto a runner. A nil
// generator drops the model-assisted levels and leaves the heuristic one.
func NewPriceListCascade(cfg *common.Config, gen llm.Generator, logger *slog.Logger) *Runner[Product] {
	lex := DefaultLexicon()
	v := Validator{Lex: lex}
	reader := &grid.Reader{MaxRows: cfg.Cascade.MaxGridRows, Logger: logger}

	var levels []Level[Product]
	if gen != nil {
		spatial := Spatial{Gen: gen}
		levels = append(levels, Level[Product]{
			Name:       LevelSpatial,
			Threshold:  cfg.Cascade.PriceListThresholdL1,
			StyledOnly: true,
			Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]Product, error) {
				raws, err := spatial.ExtractProducts(ctx, g, sink)
				if err != nil {
					return nil, err
				}
				return v.Products(raws, LevelSpatial, sink), nil
			},
		})
		structural := Structural{Gen: gen, Lex: lex, Audit: cfg.Cascade.AuditPass}
		levels = append(levels, Level[Product]{
			Name:      LevelStructural,
			Threshold: cfg.Cascade.PriceListThresholdL2,
			Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]Product, error) {
				raws, err := structural.ExtractProducts(ctx, g, sink)
				if err != nil {
					return nil, err
				}
				return v.Products(raws, LevelStructural, sink), nil
			},
		})
	}
	heuristic := Heuristic{Lex: lex}
	levels = append(levels, Level[Product]{
		Name:      LevelHeuristic,
		Threshold: 1,
		Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]Product, error) {
			raws, err := heuristic.ExtractProducts(ctx, g, sink)
			if err != nil {
				return nil, err
			}
			return v.Products(raws, LevelHeuristic, sink), nil
		},
	})
	return &Runner[Product]{Reader: reader, Levels: levels, Logger: logger}
}

// NewClientRequestCascade wires the client-request levels. Requests are
// short, so every level shares the same low threshold.
func NewClientRequestCascade(cfg *common.Config, gen llm.Generator, logger *slog.Logger) *Runner[RequestedItem] {
	lex := DefaultLexicon()
	v := Validator{Lex: lex}
	reader := &grid.Reader{MaxRows: cfg.Cascade.MaxGridRows, Logger: logger}
	threshold := cfg.Cascade.RequestThreshold

	var levels []Level[RequestedItem]
	if gen != nil {
		spatial := Spatial{Gen: gen}
		levels = append(levels, Level[RequestedItem]{
			Name:       LevelSpatial,
			Threshold:  threshold,
			StyledOnly: true,
			Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]RequestedItem, error) {
				raws, err := spatial.ExtractItems(ctx, g, sink)
				if err != nil {
					return nil, err
				}
				return v.Items(raws, LevelSpatial, sink), nil
			},
		})
		structural := Structural{Gen: gen, Lex: lex}
		levels = append(levels, Level[RequestedItem]{
			Name:      LevelStructural,
			Threshold: threshold,
			Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]RequestedItem, error) {
				raws, err := structural.ExtractItems(ctx, g, sink)
				if err != nil {
					return nil, err
				}
				return v.Items(raws, LevelStructural, sink), nil
			},
		})
	}
	heuristic := Heuristic{Lex: lex}
	levels = append(levels, Level[RequestedItem]{
		Name:      LevelHeuristic,
		Threshold: 1,
		Extract: func(ctx context.Context, g *grid.Grid, sink *Sink) ([]RequestedItem, error) {
			raws, err := heuristic.ExtractItems(ctx, g, sink)
			if err != nil {
				return nil, err
			}
			return v.Items(raws, LevelHeuristic, sink), nil
		},
	})
	return &Runner[RequestedItem]{Reader: reader, Levels: levels, Logger: logger}
}

// SplitNameQuantity parses a free-text request line into a name and a
// quantity string. Unit-suffixed quantities win; a trailing bare number is
// taken only when it is small enough not to be a diameter or an article.
func SplitNameQuantity(line string) (string, string) {
	s := strings.TrimSpace(line)
	if utf8.RuneCountInString(s) < 5 {
		return "", ""
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "цена") || strings.Contains(lower, "руб") {
		return "", ""
	}

	if m := reQtySuffix.FindStringSubmatchIndex(s); m != nil {
		name := strings.TrimRight(strings.TrimSpace(s[:m[0]]), "-–,;:")
		return strings.TrimSpace(name), s[m[2]:m[3]]
	}
	if m := reLastNum.FindStringSubmatchIndex(s); m != nil {
		num := s[m[2]:m[3]]
		if n, err := strconv.Atoi(num); err == nil && n > 0 && n < 10000 {
			name := strings.TrimRight(strings.TrimSpace(s[:m[0]]), "-–,;:")
			if name != "" {
				return strings.TrimSpace(name), num
			}
		}
	}
	return s, ""
}
