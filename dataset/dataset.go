// Package dataset models trees of named quality traces and their
// multi-resolution reductions.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// Node is implemented by *Series and *Dataset.
type Node interface {
	Name() string
	Bounds() (Bounds, error)
	EachSeries(visit func(path []string, s *Series) error, prefix []string) error
}

var (
	_ Node = (*Series)(nil)
	_ Node = (*Dataset)(nil)
)

// Dataset is a node in a tree whose leaves are Series. It keeps the raw
// document and only decodes children when they are first requested.
type Dataset struct {
	name string
	meta Meta
	raw  map[string]json.RawMessage

	lock     sync.Mutex
	children map[string]Node
}

func newDataset(name string, meta Meta, raw map[string]json.RawMessage) *Dataset {
	return &Dataset{
		name:     name,
		meta:     meta,
		raw:      raw,
		children: make(map[string]Node),
	}
}

func (d *Dataset) Name() string { return d.name }
func (d *Dataset) Meta() Meta   { return d.meta }

// Names returns the immediate child keys in lexicographic order.
func (d *Dataset) Names() []string {
	names := maps.Keys(d.raw)
	slices.Sort(names)
	return names
}

// Get returns the named child: a *Series for array values, a *Dataset for
// nested objects. Children are decoded once and reused.
func (d *Dataset) Get(name string) (Node, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if n, ok := d.children[name]; ok {
		return n, nil
	}
	raw, ok := d.raw[name]
	if !ok {
		return nil, fmt.Errorf("%q in %q: %w", name, d.name, ErrNotFound)
	}
	n, err := decodeNode(name, d.meta, raw)
	if err != nil {
		return nil, err
	}
	d.children[name] = n
	return n, nil
}

// Child returns the named nested dataset.
func (d *Dataset) Child(name string) (*Dataset, error) {
	n, err := d.Get(name)
	if err != nil {
		return nil, err
	}
	child, ok := n.(*Dataset)
	if !ok {
		return nil, fmt.Errorf("%q in %q is a series: %w", name, d.name, ErrNotFound)
	}
	return child, nil
}

// Series walks path from this node and returns the series at its end.
func (d *Dataset) Series(path ...string) (*Series, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path in %q: %w", d.name, ErrNotFound)
	}
	cur := d
	for _, name := range path[:len(path)-1] {
		next, err := cur.Child(name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	last := path[len(path)-1]
	n, err := cur.Get(last)
	if err != nil {
		return nil, err
	}
	s, ok := n.(*Series)
	if !ok {
		return nil, fmt.Errorf("%q in %q is not a series: %w", last, cur.name, ErrNotFound)
	}
	return s, nil
}

// EachSeries visits every leaf below d depth first, children in
// lexicographic order. The path passed to visit starts with prefix and
// then this node's name; visit may retain it. The walk stops at the first
// error.
func (d *Dataset) EachSeries(visit func(path []string, s *Series) error, prefix []string) error {
	path := joinPath(prefix, d.name)
	for _, name := range d.Names() {
		n, err := d.Get(name)
		if err != nil {
			return err
		}
		if err := n.EachSeries(visit, path); err != nil {
			return err
		}
	}
	return nil
}

// Bounds aggregates the bounds of every non-empty leaf: overall min and
// max, and the longest length.
func (d *Dataset) Bounds() (Bounds, error) {
	var all []Bounds
	err := d.EachSeries(func(_ []string, s *Series) error {
		if s.Len() == 0 {
			return nil
		}
		b, err := s.Bounds()
		if err != nil {
			return err
		}
		all = append(all, b)
		return nil
	}, nil)
	if err != nil {
		return Bounds{}, err
	}
	b, err := Aggregate(all...)
	if err != nil {
		return Bounds{}, fmt.Errorf("dataset %q: %w", d.name, err)
	}
	return b, nil
}

func decodeNode(name string, meta Meta, raw json.RawMessage) (Node, error) {
	switch firstByte(raw) {
	case '[':
		return decodeSeries(name, meta, raw)
	case '{':
		var children map[string]json.RawMessage
		if err := json.Unmarshal(raw, &children); err != nil {
			return nil, fmt.Errorf("%q: %w: %v", name, ErrMalformedDocument, err)
		}
		return newDataset(name, meta, children), nil
	default:
		return nil, fmt.Errorf("%q is neither an array nor an object: %w", name, ErrMalformedDocument)
	}
}

type rawPoint struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
	Avg *float64 `json:"avg"`
}

func decodeSeries(name string, meta Meta, raw json.RawMessage) (*Series, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("series %q: %w: %v", name, ErrMalformedDocument, err)
	}
	if len(elems) == 0 || firstByte(elems[0]) != '{' {
		values := make([]float64, len(elems))
		for i, e := range elems {
			if err := json.Unmarshal(e, &values[i]); err != nil || firstByte(e) == 'n' {
				return nil, fmt.Errorf("series %q sample %d is not a number: %w", name, i, ErrMalformedDocument)
			}
		}
		return NewSimple(name, meta, values), nil
	}
	points := make([]Point, len(elems))
	for i, e := range elems {
		var rp rawPoint
		if firstByte(e) != '{' {
			return nil, fmt.Errorf("series %q sample %d is not a min/max/avg object: %w", name, i, ErrMalformedDocument)
		}
		if err := json.Unmarshal(e, &rp); err != nil {
			return nil, fmt.Errorf("series %q sample %d: %w: %v", name, i, ErrMalformedDocument, err)
		}
		if rp.Min == nil || rp.Max == nil || rp.Avg == nil {
			return nil, fmt.Errorf("series %q sample %d lacks one of min/max/avg: %w", name, i, ErrMalformedDocument)
		}
		points[i] = Point{Min: *rp.Min, Max: *rp.Max, Avg: *rp.Avg}
	}
	return NewComplex(name, meta, points), nil
}

func firstByte(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
