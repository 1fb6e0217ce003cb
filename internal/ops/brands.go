package ops

import "github.com/ndelgado/abasto/internal/catalog"

// BrandCount is a derived tally of records sharing a brand.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// CountByBrand tallies records per brand in a single pass. Output entries
// follow first-occurrence order of brands in the input, not sorted order.
func CountByBrand(records []*catalog.Record) []BrandCount {
	index := make(map[string]int, len(records))
	counts := make([]BrandCount, 0)

	for _, r := range records {
		if i, ok := index[r.Brand]; ok {
			counts[i].Count++
			continue
		}
		index[r.Brand] = len(counts)
		counts = append(counts, BrandCount{Brand: r.Brand, Count: 1})
	}

	return counts
}

// BrandLine is one row of the brand-grouped projection.
type BrandLine struct {
	Brand string  `json:"brand"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// GroupedView projects (brand, name, price) per record, preserving input
// order. Clustering by brand is the Sort operation's job, not this one's.
func GroupedView(records []*catalog.Record) []BrandLine {
	lines := make([]BrandLine, len(records))
	for i, r := range records {
		lines[i] = BrandLine{Brand: r.Brand, Name: r.Name, Price: r.Price}
	}
	return lines
}
