package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/db"
)

// shopCatalog loads the fixture catalog records for shop-loop tests.
func shopCatalog(t *testing.T) []*catalog.Record {
	t.Helper()
	records, err := catalog.Load(strings.NewReader(testCatalogCSV))
	require.NoError(t, err)
	return records
}

// TestRunShopFullWorkflow walks a complete checkout: two purchases, one
// recoverable mistake, invoice written, sale recorded in the ledger.
func TestRunShopFullWorkflow(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	records := shopCatalog(t)

	invoiceName := filepath.Join(t.TempDir(), "compra")
	input := strings.Join([]string{
		"pedigree", // brand, lowercase on purpose
		"1",        // Alimento Perro
		"2",        // quantity; subtotal 120 * 2 = 240
		"acme",
		"9",    // bad selection, resets to brand prompt
		"acme", // try again
		"4",    // Collar Perro
		"3",    // subtotal 30 * 3 = 90
		"x",    // lowercase sentinel ends the session
		invoiceName,
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runShop(database, records, strings.NewReader(input), &out)
	require.NoError(t, err)

	// Truncated unit prices: 120*2 + 30*3.
	require.Contains(t, out.String(), "Total: $330")
	require.Contains(t, out.String(), "no matched product")

	invoicePath := invoiceName + ".txt"
	data, err := os.ReadFile(invoicePath)
	require.NoError(t, err)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "FACTURA DE COMPRA\n"))
	require.Contains(t, text, "Producto: Alimento Perro\n")
	require.Contains(t, text, "Cantidad: 2\n")
	require.Contains(t, text, "Subtotal: $240\n")
	require.Contains(t, text, "Producto: Collar Perro\n")
	require.Contains(t, text, "Subtotal: $90\n")

	sales, err := db.ListSales(database, 10)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Equal(t, invoicePath, sales[0].InvoicePath)
	require.Equal(t, 2, sales[0].LineCount)
	require.Equal(t, 330, sales[0].Total)
	require.Len(t, sales[0].Ref, 26)
}

// TestRunShopEmptyCartCancels exits immediately with nothing purchased.
func TestRunShopEmptyCartCancels(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	records := shopCatalog(t)

	var out bytes.Buffer
	err := runShop(database, records, strings.NewReader("X\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "purchase cancelled")

	sales, err := db.ListSales(database, 10)
	require.NoError(t, err)
	require.Empty(t, sales)
}

// TestRunShopRecoverableErrors re-prompts after bad input without touching
// the cart.
func TestRunShopRecoverableErrors(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	records := shopCatalog(t)

	input := strings.Join([]string{
		"nosuchbrand", // unknown brand
		"acme",
		"2",
		"abc", // bad quantity, resets
		"acme",
		"2",
		"1", // subtotal 45 * 1 = 45
		"x",
		filepath.Join(t.TempDir(), "compra"),
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runShop(database, records, strings.NewReader(input), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "no records found for brand")
	require.Contains(t, out.String(), "quantity must be a non-negative integer")
	require.Contains(t, out.String(), "Total: $45")
}

// TestRunShopBlankInvoiceName aborts invoice generation; the sale is not
// recorded and nothing is written.
func TestRunShopBlankInvoiceName(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	records := shopCatalog(t)

	input := "acme\n4\n1\nx\n\n"

	var out bytes.Buffer
	err := runShop(database, records, strings.NewReader(input), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "invoice not generated")

	sales, err := db.ListSales(database, 10)
	require.NoError(t, err)
	require.Empty(t, sales)
}

// TestRunShopEOFEndsSession treats end of input like the exit sentinel.
func TestRunShopEOFEndsSession(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	records := shopCatalog(t)

	var out bytes.Buffer
	err := runShop(database, records, strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "purchase cancelled")
}
