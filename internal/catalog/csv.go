package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ndelgado/abasto/internal/errors"
)

// fieldCount is the number of columns in a catalog row.
const fieldCount = 5

// Load parses delimited catalog text into an ordered record sequence.
// The first line is a header and is skipped; every data line must carry at
// least 5 fields (extra fields are ignored). The price field may carry a
// leading currency symbol.
func Load(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []*Record
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewMalformedRecord(line+1, err.Error())
		}
		line++

		// Header line.
		if line == 1 {
			continue
		}

		if len(row) < fieldCount {
			return nil, errors.NewMalformedRecord(line, fmt.Sprintf("expected %d fields, got %d", fieldCount, len(row)))
		}

		price, err := parsePrice(row[3])
		if err != nil {
			return nil, errors.NewMalformedRecord(line, fmt.Sprintf("invalid price %q", row[3]))
		}

		records = append(records, &Record{
			ID:       strings.TrimSpace(row[0]),
			Name:     row[1],
			Brand:    row[2],
			Price:    price,
			Features: row[4],
		})
	}

	return records, nil
}

// LoadFile loads a catalog from disk.
func LoadFile(path string) ([]*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open catalog: %w", err))
	}
	defer file.Close()

	return Load(file)
}

// parsePrice strips a leading currency symbol and coerces the remainder.
func parsePrice(field string) (float64, error) {
	s := strings.TrimSpace(field)
	s = strings.TrimPrefix(s, "$")
	return strconv.ParseFloat(s, 64)
}

// Write serializes records back to the tabular format: a header row of field
// names followed by one row per record in sequence order. Fails with
// EmptyCatalog when there are no records to derive a header for.
func Write(w io.Writer, records []*Record) error {
	if len(records) == 0 {
		return errors.NewEmptyCatalog("catalog write")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(FieldNames()); err != nil {
		return errors.NewInternal(err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Name,
			r.Brand,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			r.Features,
		}
		if err := writer.Write(row); err != nil {
			return errors.NewInternal(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// WriteFile writes records to path, fully overwriting any existing file.
func WriteFile(path string, records []*Record) error {
	if len(records) == 0 {
		return errors.NewEmptyCatalog("catalog write")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create %s: %w", path, err))
	}
	defer file.Close()

	if err := Write(file, records); err != nil {
		return err
	}
	return nil
}
