package checkout

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ndelgado/abasto/internal/errors"
)

// InvoiceExt is the fixed extension appended to the caller-chosen name.
const InvoiceExt = ".txt"

const separator = "--------------------------------------------------------------------------"

// Invoice is a finalized cart ready for serialization. Ref identifies the
// sale in the ledger; it does not appear in the document text, whose layout
// is fixed for compatibility with previously generated artifacts.
type Invoice struct {
	Ref       string     `json:"ref"`
	Lines     []CartLine `json:"lines"`
	Total     int        `json:"total"`
	CreatedAt int64      `json:"created_at"`
}

// NewInvoice builds an invoice from a finalized cart.
func NewInvoice(lines []CartLine, total int) (*Invoice, error) {
	if len(lines) == 0 {
		return nil, errors.NewInvalidRequest("cannot invoice an empty cart")
	}

	ref, err := generateRef()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &Invoice{
		Ref:       ref,
		Lines:     lines,
		Total:     total,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// Render serializes the fixed invoice layout: a document header, then one
// block per cart line (product, quantity, subtotal, separator).
func (inv *Invoice) Render() string {
	var b strings.Builder
	b.WriteString("FACTURA DE COMPRA\n")
	b.WriteString(separator)
	b.WriteString("\n")

	for _, line := range inv.Lines {
		fmt.Fprintf(&b, "Producto: %s\n", line.Product)
		fmt.Fprintf(&b, "Cantidad: %d\n", line.Quantity)
		fmt.Fprintf(&b, "Subtotal: $%d\n", line.Subtotal)
		b.WriteString(separator)
		b.WriteString("\n")
	}

	return b.String()
}

// Write writes the rendered invoice to <name>.txt, overwriting any existing
// artifact. A blank name aborts generation: the caller reports it and moves
// on, nothing is written, and no other state changes.
func (inv *Invoice) Write(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.NewInvalidRequest("invoice name must not be empty; invoice not generated")
	}

	path := name + InvoiceExt
	if err := os.WriteFile(path, []byte(inv.Render()), 0644); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to write invoice: %w", err))
	}
	return path, nil
}

// generateRef generates a ULID reference for the sale.
func generateRef() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
