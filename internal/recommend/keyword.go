package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gauchoeats/gaucho/internal/models"
)

// DefaultLimit is how many items are recommended unless more are asked for
const DefaultLimit = 2

// Keyword is an offline recommender that matches query words against item names
type Keyword struct {
	Limit int
}

// NewKeyword creates a keyword recommender returning up to limit items
func NewKeyword(limit int) *Keyword {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Keyword{Limit: limit}
}

// Recommend lists the best-matching items, most matched words first
func (k *Keyword) Recommend(ctx context.Context, query string, menu []models.MenuItem) (string, error) {
	words := tokenize(query)

	type scored struct {
		item  models.MenuItem
		score int
	}
	var matches []scored
	for _, item := range menu {
		name := strings.ToLower(item.Name + " " + item.FoodStation)
		score := 0
		for _, w := range words {
			if strings.Contains(name, w) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{item: item, score: score})
		}
	}

	if len(matches) == 0 {
		return fmt.Sprintf("Sorry, nothing on today's menus matches %q.", strings.TrimSpace(query)), nil
	}

	// equal scores keep menu order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	limit := k.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%d. %s", i+1, FormatItem(m.item))
	}
	return "Here is what I recommend:\n" + strings.Join(lines, "\n"), nil
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 && !stopWords[f] {
			words = append(words, f)
		}
	}
	return words
}

var stopWords = map[string]bool{
	"the": true, "and": true, "want": true, "eat": true, "some": true,
	"for": true, "with": true, "like": true, "what": true, "can": true,
}
