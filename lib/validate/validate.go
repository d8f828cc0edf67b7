package validate

import (
	"fmt"
	"net/url"
	"slices"
)

// Error reports a single field that failed a schema invariant. Records
// carrying one are dropped, never repaired.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func NonEmpty(field, v string) error {
	if v == "" {
		return Errf(field, "must not be empty")
	}
	return nil
}

func AbsoluteURL(field, v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return Errf(field, "not a well-formed url: %s", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Errf(field, "url must be absolute: %q", v)
	}
	return nil
}

func IntInRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return Errf(field, "%d outside [%d,%d]", v, lo, hi)
	}
	return nil
}

func LenInRange(field string, n, lo, hi int) error {
	if n < lo || n > hi {
		return Errf(field, "length %d outside [%d,%d]", n, lo, hi)
	}
	return nil
}

func OneOf(field, v string, allowed []string) error {
	if !slices.Contains(allowed, v) {
		return Errf(field, "%q not among %v", v, allowed)
	}
	return nil
}
