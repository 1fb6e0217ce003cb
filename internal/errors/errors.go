package errors

import "fmt"

// ErrorCode represents an abasto error code.
type ErrorCode string

const (
	ErrMalformedRecord  ErrorCode = "MALFORMED_RECORD"  // 422
	ErrEmptyCatalog     ErrorCode = "EMPTY_CATALOG"     // 422
	ErrBrandNotFound    ErrorCode = "BRAND_NOT_FOUND"   // 404, recoverable in checkout
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION" // 404, recoverable in checkout
	ErrQuantityInvalid  ErrorCode = "QUANTITY_INVALID"  // 400, recoverable in checkout
	ErrArtifactMissing  ErrorCode = "ARTIFACT_MISSING"  // 404, recovered with guidance
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// CatalogError represents a structured error with code, status, and details.
type CatalogError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMalformedRecord creates a 422 error for an unparseable catalog line.
func NewMalformedRecord(line int, reason string) *CatalogError {
	return &CatalogError{
		Code:    ErrMalformedRecord,
		Status:  422,
		Message: fmt.Sprintf("malformed record on line %d: %s", line, reason),
		Details: map[string]any{"line": line, "reason": reason},
	}
}

// NewEmptyCatalog creates a 422 error for operations that need at least one record.
func NewEmptyCatalog(operation string) *CatalogError {
	return &CatalogError{
		Code:    ErrEmptyCatalog,
		Status:  422,
		Message: fmt.Sprintf("%s requires a non-empty catalog", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewBrandNotFound creates a 404 error for a brand with no catalog matches.
func NewBrandNotFound(brand string) *CatalogError {
	return &CatalogError{
		Code:    ErrBrandNotFound,
		Status:  404,
		Message: fmt.Sprintf("no records found for brand %q", brand),
		Details: map[string]any{"brand": brand},
	}
}

// NewInvalidSelection creates a 404 error for a product id outside the brand matches.
func NewInvalidSelection(id string) *CatalogError {
	return &CatalogError{
		Code:    ErrInvalidSelection,
		Status:  404,
		Message: fmt.Sprintf("no matched product with id %q", id),
		Details: map[string]any{"id": id},
	}
}

// NewQuantityInvalid creates a 400 error for a non-numeric or negative quantity.
func NewQuantityInvalid(input string) *CatalogError {
	return &CatalogError{
		Code:    ErrQuantityInvalid,
		Status:  400,
		Message: fmt.Sprintf("quantity must be a non-negative integer, got %q", input),
		Details: map[string]any{"input": input},
	}
}

// NewArtifactMissing creates a 404 error for an import with no prior export.
func NewArtifactMissing(path string) *CatalogError {
	return &CatalogError{
		Code:    ErrArtifactMissing,
		Status:  404,
		Message: fmt.Sprintf("export artifact %q not found; run export first", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CatalogError {
	return &CatalogError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing file or resource.
func NewNotFound(identifier string) *CatalogError {
	return &CatalogError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *CatalogError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CatalogError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a CatalogError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CatalogError); ok {
		return cErr.Code == code
	}
	return false
}

// Recoverable reports whether the error is an expected user-input condition
// that a checkout session recovers from by re-prompting.
func Recoverable(err error) bool {
	return Is(err, ErrBrandNotFound) || Is(err, ErrInvalidSelection) || Is(err, ErrQuantityInvalid)
}
