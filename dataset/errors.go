package dataset

import "errors"

var (
	// ErrNotFound is returned when a path element does not exist.
	ErrNotFound = errors.New("no such element in dataset")
	// ErrEmptyBounds is returned when bounds are requested over no data.
	ErrEmptyBounds = errors.New("bounds of empty data are undefined")
	// ErrMalformedDocument is returned for document content that cannot
	// be interpreted as a dataset or series.
	ErrMalformedDocument = errors.New("malformed document")
)
