package schema

import "errors"

// Sentinel errors for the analytics engine. Callers match them with
// errors.Is; producers wrap them with fmt.Errorf("%w: ...").
var (
	// ErrInputValidation marks structurally unusable input: empty frames,
	// length mismatches, unknown columns, out-of-range options.
	ErrInputValidation = errors.New("input validation failed")

	// ErrUnsupportedType marks a value whose type does not match its
	// declared feature kind, e.g. strings in a numerical column.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrInsufficientData marks a computation that needs more samples or
	// categories than the input provides.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnsupportedModel marks a model value the attribution engine
	// cannot explain.
	ErrUnsupportedModel = errors.New("unsupported model")
)
