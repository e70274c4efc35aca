package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for analysis errors. These allow errors.Is from callers.
var (
	ErrMissingInput      = errors.New("no input data")
	ErrInvalidCollection = errors.New("invalid collection")
	ErrMissingStrategy   = errors.New("missing calculation strategy")
)

// Collection names as they appear in input documents and error messages.
const (
	CollectionSellers         = "sellers"
	CollectionProducts        = "products"
	CollectionPurchaseRecords = "purchase_records"
)

// CollectionError reports an absent or empty input collection.
type CollectionError struct {
	Collection string
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("%s: %s must be a non-empty list", ErrInvalidCollection, e.Collection)
}

func (e *CollectionError) Unwrap() error { return ErrInvalidCollection }

// StrategyError names the required options that were not provided.
type StrategyError struct {
	Missing []string
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingStrategy, strings.Join(e.Missing, ", "))
}

func (e *StrategyError) Unwrap() error { return ErrMissingStrategy }

// Kind returns a short machine-readable label for err, or "" when err is not
// an analysis error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrInvalidCollection):
		return "invalid_collection"
	case errors.Is(err, ErrMissingStrategy):
		return "missing_strategy"
	default:
		return ""
	}
}
