package errs

import (
	"errors"

	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

// Error is implemented by API-facing error types the Mapper produces.
type Error[T any] interface {
	SetContext(m *map[string]any)
	DefaultError() T
}

// Mapping binds a set of internal errors to the exposed error returned
// when all of them appear in a chain.
type Mapping[T Error[T]] struct {
	Internal    []error
	Exposed     T
	ContextFunc func(error) map[string]any
}

// Mapper translates internal error chains into exposed errors. Priority
// mappings win over regular ones regardless of match count.
type Mapper[T Error[T]] struct {
	Mappings []Mapping[T]
	Priority []Mapping[T]
}

func NewMapper[T Error[T]](mappings, priority []Mapping[T]) Mapper[T] {
	return Mapper[T]{
		Mappings: mappings,
		Priority: priority,
	}
}

// Transform picks the exposed error for internalErr. A priority mapping
// with any match wins. Otherwise the first mapping whose internal
// errors are all present, with the highest match count, is used. When
// nothing matches the type's default error is returned.
func (m *Mapper[T]) Transform(internalErr error) T {
	for _, priority := range m.Priority {
		if matchCount(internalErr, priority.Internal) > 0 {
			return priority.Exposed
		}
	}

	mapping, ok := m.bestMatch(internalErr)
	if !ok {
		var zero T

		return zero.DefaultError()
	}

	exposed := mapping.Exposed
	if mapping.ContextFunc != nil {
		exposed.SetContext(ptr.PointTo(mapping.ContextFunc(internalErr)))
	}

	return exposed
}

// bestMatch returns the first mapping with the highest number of
// matching internal errors. Mappings requiring errors absent from the
// chain are skipped.
func (m *Mapper[T]) bestMatch(err error) (Mapping[T], bool) {
	var (
		best      Mapping[T]
		bestCount int
	)

	for _, mapping := range m.Mappings {
		count := matchCount(err, mapping.Internal)
		if count < len(mapping.Internal) {
			continue
		}

		if count > bestCount {
			best = mapping
			bestCount = count
		}
	}

	return best, bestCount > 0
}

// matchCount counts how many of the targets appear in err's chain.
func matchCount(err error, targets []error) int {
	count := 0

	for _, target := range targets {
		if errors.Is(err, target) {
			count++
		}
	}

	return count
}
