package errs

import "fmt"

// Wrap chains ext onto base so both match with errors.Is. A nil ext
// returns base unchanged.
func Wrap(base, ext error) error {
	if ext == nil {
		return base
	}

	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf annotates base with plain-text detail.
func Wrapf(base error, detail string) error {
	return fmt.Errorf("%w: %s", base, detail)
}
