package domain

import "errors"

// ErrNotFound signals a stock code referenced by a filter or reference set
// that does not exist in storage.
var ErrNotFound = errors.New("stock not found")

// ErrInvalidWeights signals malformed weight configuration (negative or
// non-finite values). Valid weights that do not sum to 1 are re-normalized
// instead of rejected.
var ErrInvalidWeights = errors.New("invalid recommendation weights")
