package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string // required; import reads the same file
	Filter string // name-substring predicate; records whose name contains it are exported
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// ExportJSON writes the records whose name contains the filter substring to
// a pretty-printed JSON array at path, overwriting any existing file. When
// nothing matches, no file is written and Count is 0.
func ExportJSON(records []*catalog.Record, input ExportInput) (*ExportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	matched := make([]*catalog.Record, 0)
	for _, r := range records {
		if strings.Contains(r.Name, input.Filter) {
			matched = append(matched, r)
		}
	}

	if len(matched) == 0 {
		return &ExportOutput{Count: 0}, nil
	}

	data, err := json.MarshalIndent(matched, "", "    ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(input.Path, data, 0644); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export: %w", err))
	}

	return &ExportOutput{Path: input.Path, Count: len(matched)}, nil
}
