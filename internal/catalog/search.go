package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
)

// Match is a catalog record with its relevance to a query.
type Match struct {
	Record Record
	Score  int
}

var reToken = regexp.MustCompile(`[\p{L}\d]+`)

// stemTokens lowercases, tokenizes and stems query or name text. Stemming is
// Russian: "задвижки" and "задвижка" must meet on the same stem. Tokens the
// stemmer cannot handle are kept as-is.
func stemTokens(text string) []string {
	raw := reToken.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if stemmed, err := snowball.Stem(t, "russian", false); err == nil && stemmed != "" {
			out = append(out, stemmed)
			continue
		}
		out = append(out, t)
	}
	return out
}

// Search ranks all records against a free-text query by stemmed token
// overlap, with a bonus for an exact diameter match since Ду is the facet
// buyers almost always constrain. Zero-score records are dropped; limit <= 0
// means no limit.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("search load: %w", err)
	}

	queryStems := stemTokens(query)
	if len(queryStems) == 0 {
		return nil, nil
	}
	querySet := make(map[string]struct{}, len(queryStems))
	for _, t := range queryStems {
		querySet[t] = struct{}{}
	}
	queryDiameter := ""
	if m := reDiameter.FindStringSubmatch(query); m != nil {
		queryDiameter = m[1]
	}

	var out []Match
	for _, r := range records {
		score := 0
		seen := make(map[string]struct{})
		for _, t := range stemTokens(r.Name) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			if _, ok := querySet[t]; ok {
				score++
			}
		}
		if queryDiameter != "" && r.Facets.Diameter == queryDiameter {
			score += 3
		}
		if score > 0 {
			out = append(out, Match{Record: r, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	s.logger.Info("catalog.search.ok", "query", query, "matches", len(out))
	return out, nil
}
