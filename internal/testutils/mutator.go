package testutils

// NewMutator wraps a base value provider so each call produces a fresh copy
// adjusted by the mutation given at the call site.
func NewMutator[T any](base func() T) func(func(*T)) T {
	return func(mutate func(*T)) T {
		value := base()
		mutate(&value)

		return value
	}
}
