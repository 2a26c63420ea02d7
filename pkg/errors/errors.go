package errors

import "fmt"

// ErrValidation indicates malformed or out-of-range caller input.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ErrNotFound indicates a resource was not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrInsufficientStock indicates an order quantity exceeds the available
// stock for the requested model and color.
type ErrInsufficientStock struct {
	Product   string
	Model     string
	Color     string
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %s %s (%s): requested %d, available %d",
		e.Product, e.Model, e.Color, e.Requested, e.Available)
}

// ErrCorruptData indicates a persisted artifact could not be parsed into
// the expected structure. Row is 1-based in the stored sheet; 0 means the
// whole file.
type ErrCorruptData struct {
	Path string
	Row  int
	Err  error
}

func (e *ErrCorruptData) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("corrupt data in %s at row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

func (e *ErrCorruptData) Unwrap() error { return e.Err }

// ErrEmptyLedger indicates analytics were requested with no ledger data at all.
type ErrEmptyLedger struct{}

func (e *ErrEmptyLedger) Error() string {
	return "no orders recorded yet"
}

// ErrUnauthorized indicates a request failed authentication
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}
