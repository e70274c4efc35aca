package dataset

import (
	"errors"
	"strings"
)

// Sentinel errors for dataset IO. Match them with errors.Is.
var (
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrReadDataset    = errors.New("read dataset failed")
	ErrWriteDataset   = errors.New("write dataset failed")
)

// FieldError describes one field that failed validation.
type FieldError struct {
	// Field is the JSON path, e.g. purchase_records[0].items[1].discount.
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation, in document order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return ErrInvalidDataset.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDataset }
