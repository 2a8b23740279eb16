package common

import "strings"

// ToPointer is a helper function to create a pointer to a value.
// x := &5 doesn't compile
// x := ToPointer(5) good.
func ToPointer[T any](p T) *T {
	return &p
}

// DerefOr returns the value pointed by p or def if p is nil
func DerefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// NonBlank returns a pointer to the trimmed string or nil when it is nil or blank.
func NonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
