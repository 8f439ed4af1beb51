package extract

import (
	"context"
	"strings"

	"github.com/supplyline/pricelist/internal/grid"
)

const (
	headerScanRows  = 20
	shapeSampleRows = 10
	digitRatioMin   = 0.6
)

// Heuristic is the Level 3 extractor: pure pattern matching over the grid
// with no model calls. It locates the header row by keyword density, assigns
// column roles by header keywords with a content-shape fallback, tracks
// section subheaders, and walks the data rows.
type Heuristic struct {
	Lex Lexicon
}

// columnRoles holds the resolved column indices; -1 means not found.
type columnRoles struct {
	name  int
	price int
	stock int
}

// ExtractProducts walks the grid and emits raw price-list records.
func (h Heuristic) ExtractProducts(_ context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	headerRow, found := h.findHeaderRow(g)
	if !found {
		sink.Logf("эвристика: строка заголовка не найдена, используется строка 0")
	} else {
		sink.Logf("эвристика: строка заголовка %d", headerRow)
	}

	roles := h.assignRoles(g, headerRow)
	if swapped := h.detectSwap(g, headerRow, &roles); swapped {
		sink.Warnf("эвристика: колонки цены и остатка переставлены по содержимому")
	}
	sink.Logf("эвристика: колонки name=%d price=%d stock=%d", roles.name, roles.price, roles.stock)

	var out []RawItem
	subheader := ""
	for _, row := range g.RowIndices() {
		if row <= headerRow {
			continue
		}
		cells := g.Row(row)
		nonEmpty := nonEmptyCells(cells)
		if len(nonEmpty) == 0 {
			continue
		}

		// Junk check runs before the subheader check so that total and
		// signature rows never become section prefixes. Only a lone value
		// in the name column counts as a subheader; a stray value in a
		// price or stock column is ignored.
		first := strings.TrimSpace(nonEmpty[0].Value)
		if len(nonEmpty) == 1 {
			if !h.Lex.IsJunk(first) && nonEmpty[0].Col == roles.name {
				subheader = first
			}
			continue
		}

		name := strings.TrimSpace(g.Value(row, roles.name))
		if name == "" {
			continue
		}
		if subheader != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(subheader)) {
			name = subheader + " " + name
		}

		item := RawItem{Name: name}
		if roles.price >= 0 {
			item.Price = strings.TrimSpace(g.Value(row, roles.price))
		}
		if roles.stock >= 0 {
			item.Stock = strings.TrimSpace(g.Value(row, roles.stock))
		}
		out = append(out, item)
	}
	sink.Logf("эвристика: извлечено строк: %d", len(out))
	return out, nil
}

// ExtractItems walks the grid and emits raw client-request records. Request
// files rarely carry headers, so every multi-cell row is a candidate and the
// quantity is taken from any numeric trailing cell.
func (h Heuristic) ExtractItems(_ context.Context, g *grid.Grid, sink *Sink) ([]RawItem, error) {
	var out []RawItem
	for _, row := range g.RowIndices() {
		cells := nonEmptyCells(g.Row(row))
		if len(cells) == 0 {
			continue
		}
		if len(cells) == 1 {
			name, qty := SplitNameQuantity(cells[0].Value)
			if name == "" {
				continue
			}
			out = append(out, RawItem{Name: name, Quantity: qty})
			continue
		}
		name := strings.TrimSpace(cells[0].Value)
		qty := ""
		for i := len(cells) - 1; i > 0; i-- {
			if v := strings.TrimSpace(cells[i].Value); hasDigit(v) {
				qty = v
				break
			}
		}
		out = append(out, RawItem{Name: name, Quantity: qty})
	}
	sink.Logf("эвристика: извлечено позиций: %d", len(out))
	return out, nil
}

// findHeaderRow scans the first rows for the one with the most header
// keyword hits; two hits minimum, otherwise row 0 is assumed.
func (h Heuristic) findHeaderRow(g *grid.Grid) (int, bool) {
	bestRow, bestScore := 0, 0
	for _, row := range g.RowIndices() {
		if row > headerScanRows {
			break
		}
		score := 0
		for _, c := range g.Row(row) {
			v := strings.ToLower(c.Value)
			if containsAny(v, h.Lex.HeaderKeywords) {
				score++
			}
		}
		if score > bestScore {
			bestRow, bestScore = row, score
		}
	}
	if bestScore >= 2 {
		return bestRow, true
	}
	return 0, false
}

// assignRoles maps header cells to column roles by keyword, falling back to
// content shape for the price column when headers are uninformative.
func (h Heuristic) assignRoles(g *grid.Grid, headerRow int) columnRoles {
	roles := columnRoles{name: -1, price: -1, stock: -1}
	for _, c := range g.Row(headerRow) {
		v := strings.ToLower(c.Value)
		switch {
		case roles.name < 0 && containsAny(v, h.Lex.NameKeywords):
			roles.name = c.Col
		case roles.price < 0 && containsAny(v, h.Lex.PriceKeywords):
			roles.price = c.Col
		case roles.stock < 0 && containsAny(v, h.Lex.StockKeywords):
			roles.stock = c.Col
		}
	}
	if roles.name < 0 {
		roles.name = 0
	}
	if roles.price < 0 {
		roles.price = h.priceColumnByShape(g, headerRow, roles)
	}
	if roles.stock < 0 {
		roles.stock = h.stockColumnByShape(g, headerRow, roles)
	}
	return roles
}

// priceColumnByShape picks the mostly-numeric column with the highest
// price-likeness over the first data rows.
func (h Heuristic) priceColumnByShape(g *grid.Grid, headerRow int, roles columnRoles) int {
	best, bestScore := -1, 0
	for col := 0; col <= g.MaxCol(); col++ {
		if col == roles.name || col == roles.stock {
			continue
		}
		filled, numeric, score := 0, 0, 0
		for _, row := range g.RowIndices() {
			if row <= headerRow {
				continue
			}
			v := strings.TrimSpace(g.Value(row, col))
			if v == "" {
				continue
			}
			filled++
			if hasDigit(v) {
				numeric++
				score += 1 + priceLikeScore(v)
			}
			if filled >= shapeSampleRows {
				break
			}
		}
		if filled == 0 || float64(numeric)/float64(filled) < digitRatioMin {
			continue
		}
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	return best
}

// stockColumnByShape picks the column whose sampled values look most like
// availability: short bare integers or known availability words.
func (h Heuristic) stockColumnByShape(g *grid.Grid, headerRow int, roles columnRoles) int {
	best, bestScore := -1, 0
	for col := 0; col <= g.MaxCol(); col++ {
		if col == roles.name || col == roles.price {
			continue
		}
		filled, stockish, score := 0, 0, 0
		for _, row := range g.RowIndices() {
			if row <= headerRow {
				continue
			}
			v := strings.TrimSpace(g.Value(row, col))
			if v == "" {
				continue
			}
			filled++
			if s := stockLikeScore(v, h.Lex); s > 0 {
				stockish++
				score += s
			}
			if filled >= shapeSampleRows {
				break
			}
		}
		if filled == 0 || float64(stockish)/float64(filled) < digitRatioMin {
			continue
		}
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	return best
}

// detectSwap compares the content shape of the resolved price and stock
// columns and swaps them when the stock column looks more price-like.
func (h Heuristic) detectSwap(g *grid.Grid, headerRow int, roles *columnRoles) bool {
	if roles.price < 0 || roles.stock < 0 {
		return false
	}
	priceAsPrice, stockAsPrice := 0, 0
	priceAsStock, stockAsStock := 0, 0
	sampled := 0
	for _, row := range g.RowIndices() {
		if row <= headerRow {
			continue
		}
		pv := strings.TrimSpace(g.Value(row, roles.price))
		sv := strings.TrimSpace(g.Value(row, roles.stock))
		if pv == "" && sv == "" {
			continue
		}
		priceAsPrice += priceLikeScore(pv)
		priceAsStock += stockLikeScore(pv, h.Lex)
		stockAsPrice += priceLikeScore(sv)
		stockAsStock += stockLikeScore(sv, h.Lex)
		sampled++
		if sampled >= shapeSampleRows {
			break
		}
	}
	if stockAsPrice > priceAsPrice && priceAsStock > stockAsStock {
		roles.price, roles.stock = roles.stock, roles.price
		return true
	}
	return false
}

func nonEmptyCells(cells []grid.Cell) []grid.Cell {
	out := cells[:0:0]
	for _, c := range cells {
		if strings.TrimSpace(c.Value) != "" {
			out = append(out, c)
		}
	}
	return out
}
