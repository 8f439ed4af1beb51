package extract

import (
	"regexp"
	"strings"

	"github.com/supplyline/pricelist/constants"
)

// Lexicon carries the keyword configuration the heuristics run on. The lists
// are domain- and language-specific, so they are injected rather than
// hard-coded; DefaultLexicon wires the Russian plumbing-fitting defaults.
type Lexicon struct {
	HeaderKeywords   []string
	NameKeywords     []string
	PriceKeywords    []string
	StockKeywords    []string
	ArticleKeywords  []string
	CategoryKeywords []string
	ServiceWords     map[string]struct{}
	UnavailableWords []string
	AvailableWords   []string
	QuantityUnits    []string

	junk []*regexp.Regexp
}

// DefaultLexicon builds a Lexicon from the lists in constants.
func DefaultLexicon() Lexicon {
	service := make(map[string]struct{}, len(constants.ServiceWords))
	for _, w := range constants.ServiceWords {
		service[w] = struct{}{}
	}
	junk := make([]*regexp.Regexp, 0, len(constants.JunkPatterns))
	for _, p := range constants.JunkPatterns {
		junk = append(junk, regexp.MustCompile(p))
	}
	return Lexicon{
		HeaderKeywords:   constants.HeaderKeywords,
		NameKeywords:     constants.NameKeywords,
		PriceKeywords:    constants.PriceKeywords,
		StockKeywords:    constants.StockKeywords,
		ArticleKeywords:  constants.ArticleKeywords,
		CategoryKeywords: constants.CategoryKeywords,
		ServiceWords:     service,
		UnavailableWords: constants.UnavailableWords,
		AvailableWords:   constants.AvailableWords,
		QuantityUnits:    constants.QuantityUnits,
		junk:             junk,
	}
}

// IsJunk reports whether a candidate name matches any junk pattern:
// bare numbers, totals, signatures, contact lines, header repeats.
func (l Lexicon) IsJunk(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, re := range l.junk {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsServiceWord reports whether a name is exactly a known placeholder.
func (l Lexicon) IsServiceWord(name string) bool {
	_, ok := l.ServiceWords[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsCategory reports whether text names a product family (group header).
func (l Lexicon) IsCategory(text string) bool {
	return containsAny(strings.ToLower(text), l.CategoryKeywords)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
