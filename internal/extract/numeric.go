package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// stripSpaces removes every space rune, including NBSP and thin spaces that
// spreadsheets use as thousands separators.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

var (
	reNumericRun = regexp.MustCompile(`[0-9][0-9\s.,\x{00a0}]*`)
	reDigits     = regexp.MustCompile(`\d+`)
	reLongDigits = regexp.MustCompile(`\d{4,}`)
	reDecimalSep = regexp.MustCompile(`\d[.,]\d`)
)

// CleanPrice parses free-text price into a float. Returns nil when the text
// carries no digits at all; returns 0 when digits are present but the number
// is unparseable, so the row is retained rather than dropped. Non-breaking
// spaces and thin spaces are stripped, and when both comma and dot appear the
// last-occurring one is the decimal separator, the other a thousands mark.
func CleanPrice(text string) *float64 {
	run := reNumericRun.FindString(text)
	if run == "" {
		return nil
	}
	s := stripSpaces(run)

	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(strings.Trim(s, "."), 64)
	if err != nil {
		zero := 0.0
		return &zero
	}
	return &v
}

// NormalizeStock maps free-text stock to canonical numeric text: known
// unavailability words to "0", availability words to the sentinel "100",
// otherwise the first embedded number, defaulting to "100".
func NormalizeStock(text string, lex Lexicon) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "100"
	}
	if containsAny(s, lex.UnavailableWords) {
		return "0"
	}
	if containsAny(s, lex.AvailableWords) {
		return "100"
	}
	if m := reDigits.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return strconv.Itoa(n)
		}
	}
	return "100"
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

// priceLikeScore rates a cell value as looking like a price: currency
// markers, a decimal separator, or a long digit run.
func priceLikeScore(value string) int {
	v := strings.ToLower(value)
	score := 0
	if strings.Contains(v, "руб") || strings.Contains(v, "₽") || strings.Contains(v, "$") || strings.Contains(v, "€") {
		score += 2
	}
	if reDecimalSep.MatchString(v) {
		score += 2
	}
	if reLongDigits.MatchString(stripSpaces(v)) {
		score++
	}
	return score
}

// stockLikeScore rates a cell value as looking like availability: stock
// words or a short bare integer.
func stockLikeScore(value string, lex Lexicon) int {
	v := strings.ToLower(strings.TrimSpace(value))
	score := 0
	if containsAny(v, lex.UnavailableWords) || containsAny(v, lex.AvailableWords) {
		score += 2
	}
	if m := reDigits.FindString(v); m != "" && len(m) <= 3 && !reDecimalSep.MatchString(v) {
		score++
	}
	return score
}
