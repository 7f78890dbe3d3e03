// Package storage coding=utf-8
// @Project : molstack
// @File    : errors.go
//
// Package storage implements LayerStorage (the monotonic, insert-only
// layer table) and StackCache (memoized stack materialization), the
// components that turn a stack path (a list of layer ids folded over a
// base) into a concrete MoleculeLayer.
package storage

import (
	"fmt"

	"github.com/cx-luo/molstack/internal/layer"
)

// LayerStorageErrorKind discriminates NoSuchLayer from a wrapped
// FilterError (§7).
type LayerStorageErrorKind int

const (
	NoSuchLayer LayerStorageErrorKind = iota
	FilterError
)

func (k LayerStorageErrorKind) String() string {
	switch k {
	case NoSuchLayer:
		return "NoSuchLayer"
	case FilterError:
		return "FilterError"
	default:
		return "Unknown"
	}
}

// LayerStorageError is raised by ReadLayer and Materialize.
type LayerStorageError struct {
	Kind  LayerStorageErrorKind
	LayerID int
	Cause error
}

func (e *LayerStorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage: %s (layer %d): %s", e.Kind, e.LayerID, e.Cause)
	}
	return fmt.Sprintf("storage: %s (layer %d)", e.Kind, e.LayerID)
}

func (e *LayerStorageError) Unwrap() error { return e.Cause }

func errNoSuchLayer(id int) error {
	return &LayerStorageError{Kind: NoSuchLayer, LayerID: id}
}

func errFilter(id int, cause error) error {
	return &LayerStorageError{Kind: FilterError, LayerID: id, Cause: cause}
}

// compile-time assertion that layer.StructuralError satisfies error, since
// FilterError always wraps one.
var _ error = (*layer.StructuralError)(nil)
