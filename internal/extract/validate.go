package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation bounds shared by every level.
const (
	MinNameLength = 3
	MaxPrice      = 10_000_000
	MaxQuantity   = 1_000_000
)

// Validator applies the shared schema/quality/dedup contract to the raw
// output of any level before it participates in cascade selection. Every
// rejection is logged with the offending name and the rule that fired,
// tagged with the level name, so failures are attributable to an extractor.
type Validator struct {
	Lex Lexicon
}

// Products normalizes, validates and deduplicates raw price-list records.
func (v Validator) Products(raws []RawItem, level string, sink *Sink) []Product {
	var out []Product
	seen := make(map[string]struct{})
	rejected := 0

	for _, raw := range raws {
		name := strings.TrimSpace(raw.Name)
		price := CleanPrice(raw.Price)
		stock := NormalizeStock(raw.Stock, v.Lex)

		if rule := v.checkName(name); rule != "" {
			rejected++
			sink.Logf("%s: отклонено %q: %s", level, truncateName(name), rule)
			continue
		}
		if price != nil && (*price < 0 || *price > MaxPrice) {
			rejected++
			sink.Logf("%s: отклонено %q: цена вне диапазона (%.2f)", level, truncateName(name), *price)
			continue
		}

		key := dedupKey(name, price, stock)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Product{FullName: name, Price: price, Stock: stock})
	}

	if dups := len(raws) - rejected - len(out); dups > 0 {
		sink.Logf("%s: удалено дубликатов: %d", level, dups)
	}
	sink.Logf("%s: валидация завершена, принято %d, отклонено %d", level, len(out), rejected)
	return out
}

// Items normalizes, validates and deduplicates raw client-request records.
func (v Validator) Items(raws []RawItem, level string, sink *Sink) []RequestedItem {
	var out []RequestedItem
	seen := make(map[string]struct{})
	rejected := 0

	for _, raw := range raws {
		name := strings.TrimSpace(raw.Name)
		qty, ok := parseQuantity(raw.Quantity)

		if rule := v.checkName(name); rule != "" {
			rejected++
			sink.Logf("%s: отклонено %q: %s", level, truncateName(name), rule)
			continue
		}
		if !ok || qty < 0 || qty > MaxQuantity {
			rejected++
			sink.Logf("%s: отклонено %q: недопустимое количество %q", level, truncateName(name), raw.Quantity)
			continue
		}

		key := strings.ToLower(name) + "|" + strconv.Itoa(qty)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, RequestedItem{FullName: name, Quantity: qty})
	}

	if dups := len(raws) - rejected - len(out); dups > 0 {
		sink.Logf("%s: удалено дубликатов: %d", level, dups)
	}
	sink.Logf("%s: валидация завершена, принято %d, отклонено %d", level, len(out), rejected)
	return out
}

// checkName returns the violated rule, or "" when the name passes.
func (v Validator) checkName(name string) string {
	if utf8.RuneCountInString(name) < MinNameLength {
		return "слишком короткое название"
	}
	if v.Lex.IsServiceWord(name) {
		return "служебное слово"
	}
	if len(strings.Fields(name)) < 2 && !hasDigit(name) {
		return "однословное название без цифр"
	}
	if v.Lex.IsJunk(name) {
		return "мусорная строка"
	}
	return ""
}

// parseQuantity tolerates "10", "10 шт" and "10.0"; empty defaults to 1.
func parseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	if m := reDigits.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

// dedupKey is the case-insensitive, whitespace-trimmed (name, price, stock)
// triple. Name alone is not enough: identical names at different prices are
// legitimately distinct SKUs.
func dedupKey(name string, price *float64, stock string) string {
	p := "-"
	if price != nil {
		p = strconv.FormatFloat(*price, 'f', -1, 64)
	}
	return strings.ToLower(strings.TrimSpace(name)) + "|" + p + "|" + strings.TrimSpace(stock)
}

func truncateName(s string) string {
	const max = 50
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
