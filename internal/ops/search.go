package ops

import (
	"strings"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

// SearchOutput contains the result of a feature search.
type SearchOutput struct {
	Query string            `json:"query"` // after capitalization
	Items []*catalog.Record `json:"items"`
}

// FindByFeature returns every record whose feature string contains the query
// as a substring. The query is capitalized (first rune upper, remainder
// unchanged) before matching and the match is case-sensitive after that, so
// "liquido" and "Liquido" find the same records but "LIQUIDO" does not.
// An empty result is valid output, not an error.
func FindByFeature(records []*catalog.Record, query string) (*SearchOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	needle := catalog.Capitalize(query)
	items := make([]*catalog.Record, 0)
	for _, r := range records {
		if strings.Contains(r.Features, needle) {
			items = append(items, r)
		}
	}

	return &SearchOutput{Query: needle, Items: items}, nil
}
