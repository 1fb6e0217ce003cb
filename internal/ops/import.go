package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Path  string            `json:"path"`
	Count int               `json:"count"`
	Items []*catalog.Record `json:"items"`
}

// ImportJSON reads records back from a prior JSON export. A missing file is
// an expected condition, reported as ArtifactMissing with guidance rather
// than treated as fatal.
func ImportJSON(path string) (*ImportOutput, error) {
	if path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewArtifactMissing(path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	var items []*catalog.Record
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("invalid export artifact: %w", err))
	}

	return &ImportOutput{Path: path, Count: len(items), Items: items}, nil
}
