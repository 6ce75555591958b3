package errors

import "fmt"

// Wrap adds context to err and returns nil when err is nil, so it can be
// used inline on return statements:
//
//	rows, err := r.ReadAll()
//	if err != nil {
//	    return nil, errors.Wrap(err, "failed to read work log")
//	}
//
// The chain is preserved, so errors.Is(err, errors.ErrMalformedRow) still
// works on the result. Wrap only at package boundaries.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message, e.g.
//
//	return errors.Wrapf(err, "row %d", row)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
