package checkout

import (
	"strconv"
	"strings"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

// ExitSentinel ends a session at the brand or selection prompt.
// Input is capitalized before the comparison, so "x" works too.
const ExitSentinel = "X"

// State identifies what input the session is waiting for.
type State int

const (
	StateAwaitingBrand State = iota
	StateAwaitingSelection
	StateAwaitingQuantity
	StateEnded
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateAwaitingBrand:
		return "awaiting_brand"
	case StateAwaitingSelection:
		return "awaiting_selection"
	case StateAwaitingQuantity:
		return "awaiting_quantity"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// CartLine is one confirmed purchase entry. Lines are immutable once
// appended; there is no remove-from-cart operation.
type CartLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Subtotal int    `json:"subtotal"`
}

// Session is the checkout state machine. It references the live catalog
// sequence and accumulates cart lines until the caller ends the session.
// Recoverable input errors (unknown brand, bad selection, bad quantity)
// reset the session to the brand prompt and leave the cart unchanged.
type Session struct {
	records  []*catalog.Record
	matches  []*catalog.Record
	selected *catalog.Record
	state    State
	lines    []CartLine
}

// NewSession starts a checkout session over the given catalog.
func NewSession(records []*catalog.Record) *Session {
	return &Session{
		records: records,
		state:   StateAwaitingBrand,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Matches returns the records matched by the last accepted brand input.
func (s *Session) Matches() []*catalog.Record {
	return s.matches
}

// Lines returns the accumulated cart.
func (s *Session) Lines() []CartLine {
	return s.lines
}

// Total sums the cart subtotals.
func (s *Session) Total() int {
	total := 0
	for _, l := range s.lines {
		total += l.Subtotal
	}
	return total
}

// Empty reports whether no purchase was confirmed.
func (s *Session) Empty() bool {
	return len(s.lines) == 0
}

// SubmitBrand handles input at the brand prompt. The input is capitalized,
// checked against the exit sentinel, and otherwise matched by exact brand
// equality over the full catalog.
func (s *Session) SubmitBrand(input string) error {
	if s.state != StateAwaitingBrand {
		return errors.NewInvalidRequest("session is not awaiting a brand")
	}

	brand := catalog.Capitalize(strings.TrimSpace(input))
	if brand == ExitSentinel {
		s.state = StateEnded
		return nil
	}

	var matches []*catalog.Record
	for _, r := range s.records {
		if r.Brand == brand {
			matches = append(matches, r)
		}
	}

	if len(matches) == 0 {
		return errors.NewBrandNotFound(brand)
	}

	s.matches = matches
	s.state = StateAwaitingSelection
	return nil
}

// SubmitSelection handles input at the product-id prompt. The id is looked
// up among the brand-filtered matches only; a miss resets to the brand
// prompt.
func (s *Session) SubmitSelection(input string) error {
	if s.state != StateAwaitingSelection {
		return errors.NewInvalidRequest("session is not awaiting a selection")
	}

	id := catalog.Capitalize(strings.TrimSpace(input))
	if id == ExitSentinel {
		s.state = StateEnded
		return nil
	}

	for _, r := range s.matches {
		if r.ID == id {
			s.selected = r
			s.state = StateAwaitingQuantity
			return nil
		}
	}

	s.reset()
	return errors.NewInvalidSelection(id)
}

// SubmitQuantity handles input at the quantity prompt. A non-numeric or
// negative quantity resets to the brand prompt with the cart unchanged; a
// valid quantity appends one cart line and loops back to the brand prompt.
//
// The subtotal truncates the unit price to an integer before multiplying.
// That matches the system this replaces; do not "fix" it here.
func (s *Session) SubmitQuantity(input string) error {
	if s.state != StateAwaitingQuantity {
		return errors.NewInvalidRequest("session is not awaiting a quantity")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || quantity < 0 {
		s.reset()
		return errors.NewQuantityInvalid(input)
	}

	s.lines = append(s.lines, CartLine{
		Product:  s.selected.Name,
		Quantity: quantity,
		Subtotal: int(s.selected.Price) * quantity,
	})

	s.reset()
	return nil
}

// reset returns the session to the brand prompt between purchases and after
// recoverable input errors.
func (s *Session) reset() {
	s.matches = nil
	s.selected = nil
	s.state = StateAwaitingBrand
}
