package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gurpreet/minishop/internal/api"
)

// maxTypoDistance is how far a non-substring match may drift from a word of
// the product name before it drops out of the results.
const maxTypoDistance = 2

// Filter narrows the catalog for the shop view. Zero values mean "no
// constraint"; MaxCents of 0 leaves the upper bound open.
type Filter struct {
	Query    string
	Category string
	MinCents int64
	MaxCents int64
}

// FilterProducts applies category and price constraints, then ranks by query:
// substring matches first, then fuzzy name matches by edit distance.
func FilterProducts(products []api.Product, f Filter) []api.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	type ranked struct {
		product api.Product
		score   int
	}
	var out []ranked
	for _, p := range products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		cents := p.PriceCents()
		if cents < f.MinCents {
			continue
		}
		if f.MaxCents > 0 && cents > f.MaxCents {
			continue
		}
		if query == "" {
			out = append(out, ranked{product: p})
			continue
		}
		score, ok := matchScore(strings.ToLower(p.Name), query)
		if !ok {
			continue
		}
		out = append(out, ranked{product: p, score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	result := make([]api.Product, len(out))
	for i, r := range out {
		result[i] = r.product
	}
	return result
}

// matchScore rates name against query: 0 for substring hits, otherwise the
// smallest per-word edit distance when it is within maxTypoDistance.
func matchScore(name, query string) (int, bool) {
	if strings.Contains(name, query) {
		return 0, true
	}
	best := maxTypoDistance + 1
	for _, word := range strings.Fields(name) {
		if d := levenshtein.ComputeDistance(word, query); d < best {
			best = d
		}
	}
	if best > maxTypoDistance {
		return 0, false
	}
	return best, true
}

// Categories lists the distinct categories present, sorted, for the shop
// filter picker.
func Categories(products []api.Product) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
