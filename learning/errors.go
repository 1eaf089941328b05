package learning

import "github.com/pkg/errors"

// The error kinds returned by this package. Detail is attached with errors.Wrapf, so callers should compare against
// errors.Cause(err).
var (
	// IOError is returned when a source or destination cannot be opened, read or written.
	IOError = errors.New("io error")
	// FormatError is returned for a record line that is not valid JSON.
	FormatError = errors.New("malformed record")
	// ShapeMismatchError is returned when inputs and labels are not aligned, or vectors differ in dimension.
	ShapeMismatchError = errors.New("shape mismatch")
	// TrainingError is returned for degenerate datasets or when the optimiser fails.
	TrainingError = errors.New("training failed")
	// NotTrainedError is returned when a model is used for prediction before it was trained.
	NotTrainedError = errors.New("model is not trained")
	// CorruptModelError is returned when persisted model bytes fail validation.
	CorruptModelError = errors.New("corrupt model")
)
