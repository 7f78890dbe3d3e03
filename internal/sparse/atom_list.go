// Package sparse coding=utf-8
// @Project : molstack
// @File    : atom_list.go
//
// Package sparse holds the index-stable, gap-tolerant containers the rest
// of the engine builds on: SparseAtomList and SparseBondMatrix. Both keep
// sparse (public, stable) indices distinct from continuous (present-only)
// indices — see molstack/internal/xyzio for how the two spaces meet.
package sparse

import (
	"errors"

	"github.com/cx-luo/molstack/internal/chemistry"
)

// ErrCapacityUnderflow is returned by UpdateFromContinuousList when the
// supplied continuous list runs out of elements before every present
// slot has been refilled.
var ErrCapacityUnderflow = errors.New("sparse: capacity underflow")

// AtomList is an ordered, index-stable sequence of optional atoms. A nil
// entry is a hole; a present entry with an unrecognized atomic number is
// still "present" for migration purposes but does not count toward the
// continuous index space (see chemistry.ValidatedElementNum).
type AtomList struct {
	atoms []*chemistry.Atom3D
}

// NewAtomList creates a list of the given length, all holes.
func NewAtomList(capacity int) *AtomList {
	return &AtomList{atoms: make([]*chemistry.Atom3D, capacity)}
}

// Len returns the current length of the list.
func (l *AtomList) Len() int {
	return len(l.atoms)
}

// ExtendTo grows the list to capacity if it is smaller, padding new slots
// with holes.
func (l *AtomList) ExtendTo(capacity int) {
	l.extendTo(capacity)
}

func (l *AtomList) extendTo(capacity int) {
	if l.Len() < capacity {
		grown := make([]*chemistry.Atom3D, capacity)
		copy(grown, l.atoms)
		l.atoms = grown
	}
}

// Offset prepends n holes, shifting every existing index up by n.
func (l *AtomList) Offset(n int) *AtomList {
	shifted := make([]*chemistry.Atom3D, n+l.Len())
	copy(shifted[n:], l.atoms)
	return &AtomList{atoms: shifted}
}

// ReadAtom returns the atom at index, or nil if index is out of range or
// the slot is a hole.
func (l *AtomList) ReadAtom(index int) *chemistry.Atom3D {
	if index < 0 || index >= l.Len() {
		return nil
	}
	return l.atoms[index]
}

// SetAtoms writes atoms starting at offset, extending the list as needed.
// A nil entry in atoms clears that slot to a hole.
func (l *AtomList) SetAtoms(offset int, atoms []*chemistry.Atom3D) {
	needed := offset + len(atoms)
	l.extendTo(needed)
	for i, atom := range atoms {
		l.atoms[offset+i] = atom
	}
}

// Isometry applies an in-place rigid transform to every present atom
// whose index is in select.
func (l *AtomList) Isometry(transform func(chemistry.Vector3) chemistry.Vector3, select_ map[int]struct{}) {
	for idx, atom := range l.atoms {
		if atom == nil {
			continue
		}
		if _, ok := select_[idx]; !ok {
			continue
		}
		moved := *atom
		moved.Position = transform(atom.Position)
		l.atoms[idx] = &moved
	}
}

// Migrate extends self to max(len(self), len(other)) then overwrites each
// index with other's value wherever other has a present slot (including a
// present-but-invalid atom, which still counts as present for migration).
func (l *AtomList) Migrate(other *AtomList) {
	capacity := l.Len()
	if other.Len() > capacity {
		capacity = other.Len()
	}
	l.extendTo(capacity)
	for i := range l.atoms {
		if v := other.ReadAtom(i); v != nil {
			l.atoms[i] = v
		}
	}
}

// Data returns the backing slice, for callers (export, hashing) that need
// to walk every slot including holes.
func (l *AtomList) Data() []*chemistry.Atom3D {
	return l.atoms
}

// ToContinuousIndex returns the zero-based ordinal of the atom at index
// among present-and-valid atoms enumerated in sparse order, or
// (0, false) if index is not present-and-valid.
func (l *AtomList) ToContinuousIndex(index int) (int, bool) {
	atom := l.ReadAtom(index)
	if atom == nil || !atom.Valid() {
		return 0, false
	}
	count := 0
	for i := 0; i < index; i++ {
		if a := l.atoms[i]; a != nil && a.Valid() {
			count++
		}
	}
	return count, true
}

// FromContinuousIndex returns the sparse index of the k-th (0-based)
// present-and-valid atom, or (0, false) if there are fewer than k+1 of
// them.
func (l *AtomList) FromContinuousIndex(k int) (int, bool) {
	seen := -1
	for i, a := range l.atoms {
		if a != nil && a.Valid() {
			seen++
			if seen == k {
				return i, true
			}
		}
	}
	return 0, false
}

// UpdateFromContinuousList returns a copy of l with every present-and-valid
// slot replaced, in sparse order, by successive elements of list. Fails
// with ErrCapacityUnderflow if list is exhausted before every slot is
// refilled.
func (l *AtomList) UpdateFromContinuousList(list []chemistry.Atom3D) (*AtomList, error) {
	out := &AtomList{atoms: append([]*chemistry.Atom3D(nil), l.atoms...)}
	next := 0
	for i, a := range out.atoms {
		if a != nil && a.Valid() {
			if next >= len(list) {
				return nil, ErrCapacityUnderflow
			}
			v := list[next]
			out.atoms[i] = &v
			next++
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (l *AtomList) Clone() *AtomList {
	out := make([]*chemistry.Atom3D, len(l.atoms))
	for i, a := range l.atoms {
		if a != nil {
			v := *a
			out[i] = &v
		}
	}
	return &AtomList{atoms: out}
}
