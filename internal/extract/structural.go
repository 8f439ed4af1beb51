package extract

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/grid"
	"github.com/supplyline/pricelist/internal/llm"
)

const (
	sampleAllLimit = 200
	sampleChunk    = 30
	sampleRandSeed = 1
)

// Structural is the Level 2 extractor. For price lists it asks the model for
// a ColumnMap of a row sample, validates it against the schema, optionally
// audits it with a second call, then walks every data row locally. Model
// tokens scale with the sample, not the sheet, so this level handles sheets
// far beyond the one-shot budget of Level 1.
type Structural struct {
	Gen   llm.Generator
	Lex   Lexicon
	Audit bool
}

// ExtractProducts runs the structural price-list extraction.
func (s Structural) ExtractProducts(ctx context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	rows := sampleRowIndices(g.RowIndices())
	sample := RenderRows(g, rows)
	sink.Logf("структурный: выборка строк для анализа: %d", len(rows))

	reply, err := s.Gen.Generate(ctx, ColumnMapPrompt(sample))
	if err != nil {
		return nil, err
	}
	raw, ok := llm.FirstJSONObject(reply)
	if !ok {
		return nil, common.WrapError(common.ErrMapInvalid, "reply carries no JSON object")
	}
	m, err := ParseColumnMap([]byte(raw), true)
	if err != nil {
		return nil, err
	}
	sink.Logf("структурный: карта колонок принята, заголовок %d, данные с %d", m.HeaderRowIndex, m.DataStartRowIndex)

	if s.Audit {
		s.auditMap(ctx, sample, m, sink)
	}

	items := s.walkRows(g, m, sink)
	sink.Logf("структурный: извлечено строк: %d", len(items))
	return items, nil
}

// auditMap runs the optional second-opinion pass over the accepted map. The
// verdict is informational: a negative answer is logged as a warning and the
// map stays in force, since auditor false negatives are common.
func (s Structural) auditMap(ctx context.Context, sample string, m *ColumnMap, sink *Sink) {
	reply, err := s.Gen.Generate(ctx, AuditPrompt(sample, m))
	if err != nil {
		sink.Warnf("структурный: вызов аудита не удался: %v", err)
		return
	}
	var verdict struct {
		OK     bool   `json:"ok"`
		Reason string `json:"reason"`
	}
	if !llm.DecodeObject(reply, &verdict) {
		sink.Warnf("структурный: ответ аудита нечитаем, карта оставлена")
		return
	}
	if !verdict.OK {
		sink.Warnf("структурный: аудит усомнился в карте: %s", verdict.Reason)
		return
	}
	sink.Logf("структурный: аудит подтвердил карту")
}

// walkRows reads every data row through the map, tracking group and subgroup
// headers so each product name carries its section context.
func (s Structural) walkRows(g *grid.Grid, m *ColumnMap, sink *Sink) []RawItem {
	groupRows := s.groupHeaderRows(g, m)
	var out []RawItem
	group, subgroup := "", ""

	for _, row := range g.RowIndices() {
		if row < m.DataStartRowIndex {
			continue
		}
		if name, isGroup := groupRows[row]; isGroup {
			group, subgroup = name, ""
			continue
		}

		name := s.assembleName(g, row, m)
		if name == "" {
			continue
		}
		price := ""
		if m.PriceColIndex != nil {
			price = strings.TrimSpace(g.Value(row, *m.PriceColIndex))
		}
		stock := ""
		if m.StockColIndex != nil {
			stock = strings.TrimSpace(g.Value(row, *m.StockColIndex))
		}

		// A named row without a price is a subgroup header unless the name
		// itself is numeric noise or a junk line.
		if price == "" && !hasDigit(name) {
			if !s.Lex.IsJunk(name) {
				subgroup = name
			}
			continue
		}

		full := joinNameParts(group, subgroup, name)
		out = append(out, RawItem{Name: full, Price: price, Stock: stock})
	}
	if len(groupRows) > 0 {
		sink.Logf("структурный: обнаружено заголовков разделов: %d", len(groupRows))
	}
	return out
}

// groupHeaderRows finds section header rows: a single non-empty cell that is
// bold, merged, or names a known product family.
func (s Structural) groupHeaderRows(g *grid.Grid, m *ColumnMap) map[int]string {
	out := make(map[int]string)
	for _, row := range g.RowIndices() {
		if row < m.DataStartRowIndex {
			continue
		}
		cells := nonEmptyCells(g.Row(row))
		if len(cells) != 1 {
			continue
		}
		c := cells[0]
		v := strings.TrimSpace(c.Value)
		if s.Lex.IsJunk(v) {
			continue
		}
		if c.Bold || c.Merged || s.Lex.IsCategory(v) {
			out[row] = v
		}
	}
	return out
}

// assembleName concatenates the mapped name-part columns.
func (s Structural) assembleName(g *grid.Grid, row int, m *ColumnMap) string {
	parts := make([]string, 0, len(m.NamePartsCols))
	for _, col := range m.NamePartsCols {
		if v := strings.TrimSpace(g.Value(row, col)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// joinNameParts prefixes section context, suppressing a prefix the name
// already contains so "Задвижки / Задвижка 30ч6бр" does not double up.
func joinNameParts(group, subgroup, name string) string {
	lower := strings.ToLower(name)
	full := name
	if subgroup != "" && !strings.Contains(lower, strings.ToLower(subgroup)) {
		full = subgroup + " " + full
	}
	if group != "" && !strings.Contains(strings.ToLower(full), strings.ToLower(group)) {
		full = group + " " + full
	}
	return full
}

// ExtractItems is the client-request Level 2: the sampled rows go to the
// model as plain text and the items come back directly, with no column map.
func (s Structural) ExtractItems(ctx context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	rows := sampleRowIndices(g.RowIndices())
	sample := RenderRows(g, rows)
	sink.Logf("структурный: выборка строк для анализа: %d", len(rows))

	reply, err := s.Gen.Generate(ctx, TextItemsPrompt(sample))
	if err != nil {
		return nil, err
	}
	var items []RawItem
	if !llm.DecodeArray(reply, &items) {
		return nil, common.WrapError(common.ErrModelCall, "reply carries no JSON array")
	}
	sink.Logf("структурный: извлечено позиций: %d", len(items))
	return items, nil
}

// sampleRowIndices returns all rows when the sheet is small, otherwise the
// head, a deterministic random slice of the middle, and the tail. Fixed seed
// keeps runs reproducible.
func sampleRowIndices(rows []int) []int {
	if len(rows) <= sampleAllLimit {
		return rows
	}
	head := rows[:sampleChunk]
	tail := rows[len(rows)-sampleChunk:]
	middle := rows[sampleChunk : len(rows)-sampleChunk]

	rng := rand.New(rand.NewSource(sampleRandSeed))
	picked := make([]int, 0, sampleChunk)
	for _, i := range rng.Perm(len(middle))[:sampleChunk] {
		picked = append(picked, middle[i])
	}
	sort.Ints(picked)

	out := make([]int, 0, 3*sampleChunk)
	out = append(out, head...)
	out = append(out, picked...)
	out = append(out, tail...)
	return out
}
