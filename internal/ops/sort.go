package ops

import (
	"sort"

	"github.com/ndelgado/abasto/internal/catalog"
)

// Sort reorders records in place: brand ascending (lexicographic), and within
// equal brand, price descending. The sort is stable, so records equal on both
// keys keep their input order.
func Sort(records []*catalog.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Brand != records[j].Brand {
			return records[i].Brand < records[j].Brand
		}
		return records[i].Price > records[j].Price
	})
}

// NormalizeFeatures truncates each record's feature list to its first tag,
// in place. This is irreversible for the record instances: anything that
// needs the full tag list (feature search in particular) must run before
// this, or work on clones.
func NormalizeFeatures(records []*catalog.Record) {
	for _, r := range records {
		r.Features = catalog.FirstTag(r.Features)
	}
}
