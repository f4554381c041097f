package ptr

import "strings"

// PointTo returns a pointer to the given value.
func PointTo[T any](t T) *T {
	return &t
}

// IsValidStrPtr reports whether s points at a non-blank string.
func IsValidStrPtr(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
