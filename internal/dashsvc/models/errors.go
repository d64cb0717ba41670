package models

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup of an entity that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed card spec or ingest request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// SchemaMismatchError reports a payload that does not satisfy the contract of
// the card's declared chart type. Field is the offending field path.
type SchemaMismatchError struct {
	ChartType string
	Field     string
	Reason    string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("payload does not satisfy %s contract, field %q: %s", e.ChartType, e.Field, e.Reason)
}

// UnknownCardError reports a reference to a card id the registry does not hold.
type UnknownCardError struct {
	CardID string
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card %q", e.CardID)
}

// ImmutableFieldError reports an attempt to change a field that is fixed
// after creation.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("field %q is immutable after creation", e.Field)
}
