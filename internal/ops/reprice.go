package ops

import (
	"math"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

// RepriceOutput contains the result of the Reprice operation.
type RepriceOutput struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Path    string  `json:"path"`
}

// RevisePrices applies a percentage adjustment to every record's price,
// in place and preserving order, rounding to 2 decimal places. Reapplying
// compounds; there is no idempotence guarantee.
func RevisePrices(records []*catalog.Record, percent float64) error {
	if len(records) == 0 {
		return errors.NewEmptyCatalog("reprice")
	}

	for _, r := range records {
		r.Price = math.Round((r.Price+r.Price*percent/100)*100) / 100
	}
	return nil
}

// Reprice revises all prices and re-exports the full revised sequence to the
// tabular artifact at path, fully overwriting it.
func Reprice(records []*catalog.Record, percent float64, path string) (*RepriceOutput, error) {
	if err := RevisePrices(records, percent); err != nil {
		return nil, err
	}

	if err := catalog.WriteFile(path, records); err != nil {
		return nil, err
	}

	return &RepriceOutput{
		Count:   len(records),
		Percent: percent,
		Path:    path,
	}, nil
}
