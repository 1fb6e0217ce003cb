package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/checkout"
	"github.com/ndelgado/abasto/internal/db"
	"github.com/ndelgado/abasto/internal/errors"
)

// runShop drives a checkout session over the given streams. Recoverable
// input errors are reported and the session re-prompts; EOF ends the
// session the same way the exit sentinel does.
func runShop(database *sql.DB, records []*catalog.Record, in io.Reader, out io.Writer) error {
	session := checkout.NewSession(records)
	scanner := bufio.NewScanner(in)

	for session.State() != checkout.StateEnded {
		prompt(out, session.State())

		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		var err error
		switch session.State() {
		case checkout.StateAwaitingBrand:
			err = session.SubmitBrand(line)
			if err == nil && session.State() == checkout.StateAwaitingSelection {
				printMatches(out, session.Matches())
			}
		case checkout.StateAwaitingSelection:
			err = session.SubmitSelection(line)
		case checkout.StateAwaitingQuantity:
			err = session.SubmitQuantity(line)
		}

		if err != nil {
			if !errors.Recoverable(err) {
				return err
			}
			fmt.Fprintf(out, "%s\n", errorMessage(err))
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewInternal(err)
	}

	return finishShop(database, session, scanner, out)
}

// prompt writes the input prompt for the current session state.
func prompt(out io.Writer, state checkout.State) {
	switch state {
	case checkout.StateAwaitingBrand:
		fmt.Fprintf(out, "Brand (%s to finish): ", checkout.ExitSentinel)
	case checkout.StateAwaitingSelection:
		fmt.Fprintf(out, "Product id (%s to finish): ", checkout.ExitSentinel)
	case checkout.StateAwaitingQuantity:
		fmt.Fprint(out, "Quantity: ")
	}
}

// printMatches lists the brand-filtered records for selection.
func printMatches(out io.Writer, matches []*catalog.Record) {
	for _, r := range matches {
		fmt.Fprintf(out, "  [%s] %s  $%.2f  %s\n", r.ID, r.Name, r.Price, r.Features)
	}
}

// finishShop reports the total, writes the invoice, and records the sale.
// An empty cart cancels the purchase with no invoice and no ledger row.
func finishShop(database *sql.DB, session *checkout.Session, scanner *bufio.Scanner, out io.Writer) error {
	if session.Empty() {
		fmt.Fprintln(out, "No products in the cart; purchase cancelled.")
		return nil
	}

	fmt.Fprintf(out, "Total: $%d\n", session.Total())

	invoice, err := checkout.NewInvoice(session.Lines(), session.Total())
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Invoice file name: ")
	name := ""
	if scanner.Scan() {
		name = scanner.Text()
	}

	path, err := invoice.Write(name)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidRequest) {
			fmt.Fprintln(out, "Invoice name was empty; invoice not generated.")
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "Invoice written to %s (ref %s)\n", path, invoice.Ref)

	if database == nil {
		return nil
	}
	return db.InsertSale(database, &db.Sale{
		Ref:         invoice.Ref,
		InvoicePath: path,
		LineCount:   len(invoice.Lines),
		Total:       invoice.Total,
		CreatedAt:   invoice.CreatedAt,
	})
}

// errorMessage extracts the user-facing message from a structured error.
func errorMessage(err error) string {
	if cErr, ok := err.(*errors.CatalogError); ok {
		return cErr.Message
	}
	return err.Error()
}

// listSales reads the sales ledger.
func listSales(database *sql.DB, limit int) ([]db.Sale, error) {
	return db.ListSales(database, limit)
}
