package db

import (
	"database/sql"

	"github.com/ndelgado/abasto/internal/errors"
)

// Sale is one ledger row: a completed checkout session and its invoice.
type Sale struct {
	Ref         string `json:"ref"`
	InvoicePath string `json:"invoice_path"`
	LineCount   int    `json:"line_count"`
	Total       int    `json:"total"`
	CreatedAt   int64  `json:"created_at"`
}

// InsertSale records a completed sale.
func InsertSale(db *sql.DB, s *Sale) error {
	query := `
		INSERT INTO sales (ref, invoice_path, line_count, total, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, s.Ref, s.InvoicePath, s.LineCount, s.Total, s.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListSales returns up to limit sales, most recent first.
func ListSales(db *sql.DB, limit int) ([]Sale, error) {
	query := `
		SELECT ref, invoice_path, line_count, total, created_at
		FROM sales
		ORDER BY created_at DESC, ref DESC
		LIMIT ?
	`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	sales := make([]Sale, 0)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.Ref, &s.InvoicePath, &s.LineCount, &s.Total, &s.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return sales, nil
}
