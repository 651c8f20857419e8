package plainsight

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder is returned when an n-gram order is less than 1.
	ErrInvalidOrder = errors.New("n-gram order must be a positive integer")

	// ErrEmptyBits is returned when EncodeToken is given no bits.
	ErrEmptyBits = errors.New("bit string must be non-empty")

	// ErrInvalidBit is returned when a bit string holds a character other
	// than '0' or '1'.
	ErrInvalidBit = errors.New("bit string contains a character other than '0' or '1'")

	// ErrMalformedTree is returned when a Huffman tree is empty or has an
	// internal node without two children.
	ErrMalformedTree = errors.New("malformed Huffman tree")

	// ErrSizeMismatch is returned when a Distribution's Strings and Counts
	// differ in length.
	ErrSizeMismatch = errors.New("distribution strings and counts differ in length")

	// ErrInvalidTable is returned by NewTable when its arguments break the
	// frequency table invariants.
	ErrInvalidTable = errors.New("invalid frequency table")

	// ErrEmptyTable is returned when a Codec is asked to do work with a
	// table that holds no n-grams.
	ErrEmptyTable = errors.New("frequency table is empty")

	// ErrInvalidSeed is returned when an explicit seed is not exactly n-1
	// characters long.
	ErrInvalidSeed = errors.New("seed length does not match the table's context length")

	// ErrStalled is returned when the model keeps producing characters
	// without consuming any message bits.
	ErrStalled = errors.New("model stopped consuming message bits")

	// ErrNotFound is returned by DecodeToken when the token has no leaf in
	// the tree.
	ErrNotFound = errors.New("token not found in Huffman tree")
)

// ValidationError reports a bad argument to one of the codec operations.
// Err is always one of the sentinel errors above, possibly with detail.
type ValidationError struct {
	Op  string
	Err error
}

// Error returns the string representation of this error.
func (e *ValidationError) Error() string {
	return "plainsight: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var _ error = (*ValidationError)(nil)

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationf(op string, sentinel error, format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	return &ValidationError{Op: op, Err: fmt.Errorf("%w: %s", sentinel, detail)}
}
