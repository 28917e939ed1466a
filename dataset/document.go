package dataset

import (
	"encoding/json"
	"fmt"
	"io"
)

// RootName is the name given to the root node of a parsed document.
const RootName = "root"

type document struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Parse reads a document of the form {"meta": {...}, "data": {...}}.
// Only the shape of the data block is checked here; leaves are decoded,
// and rejected if malformed, when first accessed.
func Parse(r io.Reader) (*Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed reading document: %w", err)
	}
	return ParseBytes(RootName, b)
}

// ParseBytes parses a document held in memory, naming the root node name.
func ParseBytes(name string, b []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if firstByte(doc.Data) != '{' {
		return nil, fmt.Errorf("data block must be an object: %w", ErrMalformedDocument)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(doc.Data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Meta == nil {
		doc.Meta = Meta{}
	}
	return newDataset(name, doc.Meta, raw), nil
}

// New builds a dataset from an in-memory tree. Leaves must be []float64
// or []Point; nested map[string]any values become child datasets.
func New(name string, meta Meta, data map[string]any) (*Dataset, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if meta == nil {
		meta = Meta{}
	}
	return newDataset(name, meta, raw), nil
}
