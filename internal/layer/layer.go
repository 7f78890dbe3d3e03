// Package layer coding=utf-8
// @Project : molstack
// @File    : layer.go
package layer

import (
	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/groupset"
	"github.com/cx-luo/molstack/internal/idset"
	"github.com/cx-luo/molstack/internal/molecule"
)

// Layer is a pure MoleculeLayer -> MoleculeLayer edit operation. Exactly
// one of the Fill*/SetAtom*/.../Isometry* fields is populated, matching
// the Rust source's enum; Go has no sum types, so Kind discriminates.
type Layer struct {
	Kind Kind

	Fill *molecule.MoleculeLayer

	Replace *molecule.MoleculeLayer

	SetAtomIndex int
	SetAtomValue *chemistry.Atom3D

	SetBondA, SetBondB int
	SetBondOrder       *float64

	GroupMapEntries []GroupMapEntry
	IdMapEntries    []IdMapEntry

	RemoveSelector SelectMany

	IsometryTransform chemistry.Isometry3
	IsometrySelect    SelectMany
}

type Kind int

const (
	KindFill Kind = iota
	KindSetAtom
	KindSetBond
	KindGroupMap
	KindIdMap
	KindRemoveAtoms
	KindRemoveBonds
	KindIsometry
	KindReplace
)

// GroupMapEntry installs group Name over the atoms selected by Select.
type GroupMapEntry struct {
	Name   string
	Select SelectMany
}

// IdMapEntry installs a single Name -> Index binding.
type IdMapEntry struct {
	Name  string
	Index int
}

func NewFill(other *molecule.MoleculeLayer) Layer {
	return Layer{Kind: KindFill, Fill: other}
}

func NewSetAtom(index int, atom *chemistry.Atom3D) Layer {
	return Layer{Kind: KindSetAtom, SetAtomIndex: index, SetAtomValue: atom}
}

func NewSetBond(a, b int, order *float64) Layer {
	return Layer{Kind: KindSetBond, SetBondA: a, SetBondB: b, SetBondOrder: order}
}

func NewGroupMap(entries []GroupMapEntry) Layer {
	return Layer{Kind: KindGroupMap, GroupMapEntries: entries}
}

func NewIdMap(entries []IdMapEntry) Layer {
	return Layer{Kind: KindIdMap, IdMapEntries: entries}
}

func NewRemoveAtoms(selector SelectMany) Layer {
	return Layer{Kind: KindRemoveAtoms, RemoveSelector: selector}
}

func NewRemoveBonds(selector SelectMany) Layer {
	return Layer{Kind: KindRemoveBonds, RemoveSelector: selector}
}

func NewIsometry(transform chemistry.Isometry3, select_ SelectMany) Layer {
	return Layer{Kind: KindIsometry, IsometryTransform: transform, IsometrySelect: select_}
}

// NewReplace wraps a whole, already-absolute MoleculeLayer (one that is
// not a fragment meant to be offset and appended, but a complete result
// in its own right — e.g. substituent.Attach's combined molecule) so that
// Filter hands it back unchanged instead of re-offsetting it over base.
func NewReplace(whole *molecule.MoleculeLayer) Layer {
	return Layer{Kind: KindReplace, Replace: whole}
}

// Filter applies the layer to base, returning the transformed molecule.
// base is not mutated; Filter always works on (and returns) a clone.
func (l Layer) Filter(base *molecule.MoleculeLayer) (*molecule.MoleculeLayer, error) {
	switch l.Kind {
	case KindFill:
		out := base.Clone()
		out.Migrate(l.Fill.Offset(out.Len()))
		return out, nil

	case KindSetAtom:
		out := base.Clone()
		if l.SetAtomIndex >= out.Len() {
			out.ExtendTo(l.SetAtomIndex + 1)
		}
		out.Atoms.SetAtoms(l.SetAtomIndex, []*chemistry.Atom3D{l.SetAtomValue})
		return out, nil

	case KindSetBond:
		out := base.Clone()
		out.Bonds.SetBond(l.SetBondA, l.SetBondB, l.SetBondOrder)
		if out.Bonds.Len() > out.Atoms.Len() {
			out.Atoms.ExtendTo(out.Bonds.Len())
		}
		return out, nil

	case KindGroupMap:
		out := base.Clone()
		if out.Groups == nil {
			out.Groups = groupset.New()
		}
		for _, entry := range l.GroupMapEntries {
			indexes, err := entry.Select.ToIndexes(out)
			if err != nil {
				return nil, err
			}
			for idx := range indexes {
				if idx >= out.Len() {
					return nil, errRangeOutOfBounds(entry.Name)
				}
				out.Groups.Add(entry.Name, idx)
			}
		}
		return out, nil

	case KindIdMap:
		out := base.Clone()
		if out.Ids == nil {
			out.Ids = idset.New()
		}
		for _, entry := range l.IdMapEntries {
			out.Ids.Set(entry.Name, entry.Index)
		}
		return out, nil

	case KindRemoveAtoms:
		out := base.Clone()
		indexes, err := l.RemoveSelector.ToIndexes(out)
		if err != nil {
			return nil, err
		}
		for idx := range indexes {
			out.Atoms.SetAtoms(idx, []*chemistry.Atom3D{nil})
		}
		return out, nil

	case KindRemoveBonds:
		out := base.Clone()
		indexes, err := l.RemoveSelector.ToIndexes(out)
		if err != nil {
			return nil, err
		}
		for idx := range indexes {
			for other := range indexes {
				out.Bonds.SetBond(idx, other, nil)
			}
		}
		return out, nil

	case KindIsometry:
		out := base.Clone()
		indexes, err := l.IsometrySelect.ToIndexes(out)
		if err != nil {
			return nil, err
		}
		out.Atoms.Isometry(l.IsometryTransform.Apply, indexes)
		return out, nil

	case KindReplace:
		// base is ignored: l.Replace is already the full, absolute result
		// (e.g. a substituent attachment's combined molecule), not a
		// fragment to offset and migrate over base.
		return l.Replace.Clone(), nil

	default:
		return nil, errUnknownSelector("malformed layer")
	}
}
