package checkout

import (
	"testing"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

func sessionCatalog() []*catalog.Record {
	return []*catalog.Record{
		{ID: "1", Name: "Alimento Perro", Brand: "Pedigree", Price: 120.50, Features: "Seco~10kg"},
		{ID: "2", Name: "Shampoo Gato", Brand: "Acme", Price: 45.99, Features: "Liquido~250ml"},
		{ID: "3", Name: "Alimento Cachorro", Brand: "Pedigree", Price: 150.75, Features: "Seco~3kg"},
	}
}

func TestSession_BrandFiltersExactEquality(t *testing.T) {
	s := NewSession(sessionCatalog())

	if err := s.SubmitBrand("pedigree"); err != nil {
		t.Fatalf("SubmitBrand failed: %v", err)
	}

	if s.State() != StateAwaitingSelection {
		t.Errorf("State = %v, want StateAwaitingSelection", s.State())
	}
	if len(s.Matches()) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(s.Matches()))
	}
}

func TestSession_BrandNotFound(t *testing.T) {
	s := NewSession(sessionCatalog())

	err := s.SubmitBrand("Bayer")
	if !errors.Is(err, errors.ErrBrandNotFound) {
		t.Errorf("SubmitBrand should return ErrBrandNotFound, got: %v", err)
	}
	if s.State() != StateAwaitingBrand {
		t.Errorf("State = %v, want StateAwaitingBrand", s.State())
	}
}

func TestSession_ExitSentinelAtBrand(t *testing.T) {
	for _, sentinel := range []string{"x", "X"} {
		s := NewSession(sessionCatalog())
		if err := s.SubmitBrand(sentinel); err != nil {
			t.Fatalf("SubmitBrand(%q) failed: %v", sentinel, err)
		}
		if s.State() != StateEnded {
			t.Errorf("State after %q = %v, want StateEnded", sentinel, s.State())
		}
	}
}

func TestSession_ExitSentinelAtSelection(t *testing.T) {
	s := NewSession(sessionCatalog())
	if err := s.SubmitBrand("Pedigree"); err != nil {
		t.Fatalf("SubmitBrand failed: %v", err)
	}
	if err := s.SubmitSelection("x"); err != nil {
		t.Fatalf("SubmitSelection failed: %v", err)
	}
	if s.State() != StateEnded {
		t.Errorf("State = %v, want StateEnded", s.State())
	}
}

func TestSession_InvalidSelectionLeavesCartAndResets(t *testing.T) {
	s := NewSession(sessionCatalog())
	if err := s.SubmitBrand("Pedigree"); err != nil {
		t.Fatalf("SubmitBrand failed: %v", err)
	}

	// "2" exists in the catalog but not among the Pedigree matches.
	err := s.SubmitSelection("2")
	if !errors.Is(err, errors.ErrInvalidSelection) {
		t.Errorf("SubmitSelection should return ErrInvalidSelection, got: %v", err)
	}
	if s.State() != StateAwaitingBrand {
		t.Errorf("State = %v, want StateAwaitingBrand", s.State())
	}
	if !s.Empty() {
		t.Error("cart should be unchanged after invalid selection")
	}
}

func TestSession_QuantityInvalid(t *testing.T) {
	for _, input := range []string{"abc", "-3", "1.5", ""} {
		s := NewSession(sessionCatalog())
		if err := s.SubmitBrand("Acme"); err != nil {
			t.Fatalf("SubmitBrand failed: %v", err)
		}
		if err := s.SubmitSelection("2"); err != nil {
			t.Fatalf("SubmitSelection failed: %v", err)
		}

		err := s.SubmitQuantity(input)
		if !errors.Is(err, errors.ErrQuantityInvalid) {
			t.Errorf("SubmitQuantity(%q) should return ErrQuantityInvalid, got: %v", input, err)
		}
		if s.State() != StateAwaitingBrand {
			t.Errorf("State after %q = %v, want StateAwaitingBrand", input, s.State())
		}
		if !s.Empty() {
			t.Errorf("cart should be unchanged after invalid quantity %q", input)
		}
	}
}

func TestSession_ValidPurchaseTruncatesPrice(t *testing.T) {
	s := NewSession(sessionCatalog())
	if err := s.SubmitBrand("Acme"); err != nil {
		t.Fatalf("SubmitBrand failed: %v", err)
	}
	if err := s.SubmitSelection("2"); err != nil {
		t.Fatalf("SubmitSelection failed: %v", err)
	}
	if err := s.SubmitQuantity("3"); err != nil {
		t.Fatalf("SubmitQuantity failed: %v", err)
	}

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(lines))
	}

	// Price 45.99 truncates to 45 before multiplication.
	want := CartLine{Product: "Shampoo Gato", Quantity: 3, Subtotal: 135}
	if lines[0] != want {
		t.Errorf("Lines[0] = %+v, want %+v", lines[0], want)
	}
	if s.State() != StateAwaitingBrand {
		t.Errorf("State = %v, want StateAwaitingBrand (loop back)", s.State())
	}
}

func TestSession_ZeroQuantityAccepted(t *testing.T) {
	s := NewSession(sessionCatalog())
	if err := s.SubmitBrand("Acme"); err != nil {
		t.Fatalf("SubmitBrand failed: %v", err)
	}
	if err := s.SubmitSelection("2"); err != nil {
		t.Fatalf("SubmitSelection failed: %v", err)
	}
	if err := s.SubmitQuantity("0"); err != nil {
		t.Fatalf("SubmitQuantity(0) failed: %v", err)
	}

	if len(s.Lines()) != 1 || s.Lines()[0].Subtotal != 0 {
		t.Errorf("Lines = %+v, want one zero-subtotal line", s.Lines())
	}
}

func TestSession_TotalAccumulatesAcrossPurchases(t *testing.T) {
	s := NewSession(sessionCatalog())

	buy := func(brand, id, qty string) {
		t.Helper()
		if err := s.SubmitBrand(brand); err != nil {
			t.Fatalf("SubmitBrand failed: %v", err)
		}
		if err := s.SubmitSelection(id); err != nil {
			t.Fatalf("SubmitSelection failed: %v", err)
		}
		if err := s.SubmitQuantity(qty); err != nil {
			t.Fatalf("SubmitQuantity failed: %v", err)
		}
	}

	buy("Pedigree", "1", "2") // 120 * 2 = 240
	buy("Acme", "2", "1")     // 45 * 1 = 45

	if s.Total() != 285 {
		t.Errorf("Total = %d, want 285", s.Total())
	}
	if len(s.Lines()) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(s.Lines()))
	}
}

func TestSession_WrongStateRejected(t *testing.T) {
	s := NewSession(sessionCatalog())

	if err := s.SubmitQuantity("1"); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("SubmitQuantity in brand state should return ErrInvalidRequest, got: %v", err)
	}
	if err := s.SubmitSelection("1"); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("SubmitSelection in brand state should return ErrInvalidRequest, got: %v", err)
	}
}
