// Package molecule coding=utf-8
// @Project : molstack
// @File    : molecule.go
//
// Package molecule implements MoleculeLayer (called SparseMolecule in the
// spec's data-model section): the aggregate of atoms, bonds, ids, groups
// and title that every Layer edits and every materialized stack produces.
package molecule

import (
	"github.com/cx-luo/molstack/internal/groupset"
	"github.com/cx-luo/molstack/internal/idset"
	"github.com/cx-luo/molstack/internal/sparse"
)

// MoleculeLayer is the combined atoms + bonds + ids + groups + title that
// flows through layer application and materialization.
type MoleculeLayer struct {
	Atoms  *sparse.AtomList
	Bonds  *sparse.BondMatrix
	Ids    *idset.IdMap
	Groups *groupset.GroupName
	Title  string
}

// New returns an empty molecule layer (equivalent to the zero/base case
// materialize([]) produces before any base is supplied).
func New() *MoleculeLayer {
	return &MoleculeLayer{
		Atoms: sparse.NewAtomList(0),
		Bonds: sparse.NewBondMatrix(0),
	}
}

// Len returns the atom-list length (bonds are kept at the same size by
// ExtendTo / atom-bond length invariant).
func (m *MoleculeLayer) Len() int {
	return m.Atoms.Len()
}

// ExtendTo resizes both atoms and bonds to n, maintaining the
// atoms/bonds length agreement invariant (§3).
func (m *MoleculeLayer) ExtendTo(n int) {
	m.Atoms.ExtendTo(n)
	m.Bonds.ExtendTo(n)
}

// Offset shifts every atom, bond row/col, id and group index by +n.
func (m *MoleculeLayer) Offset(n int) *MoleculeLayer {
	out := &MoleculeLayer{
		Atoms: m.Atoms.Offset(n),
		Bonds: m.Bonds.Offset(n),
		Title: m.Title,
	}
	if m.Ids != nil {
		out.Ids = m.Ids.Offset(n)
	}
	if m.Groups != nil {
		out.Groups = m.Groups.Offset(n)
	}
	return out
}

// Migrate folds other over self: atom-migrate, bond-migrate, ids merged
// right-wins per key, groups merged by union. Title is left unchanged —
// callers that want a different title (e.g. substituent.Attach) set it
// explicitly after migrating; Layer::Fill keeps base's title.
func (m *MoleculeLayer) Migrate(other *MoleculeLayer) {
	m.Atoms.Migrate(other.Atoms)
	m.Bonds.Migrate(other.Bonds)
	switch {
	case m.Ids != nil && other.Ids != nil:
		m.Ids = m.Ids.MergeRightWins(other.Ids)
	case other.Ids != nil:
		m.Ids = other.Ids.Clone()
	}
	switch {
	case m.Groups != nil && other.Groups != nil:
		m.Groups = m.Groups.Union(other.Groups)
	case other.Groups != nil:
		m.Groups = other.Groups.Clone()
	}
}

// Clone returns a deep copy.
func (m *MoleculeLayer) Clone() *MoleculeLayer {
	out := &MoleculeLayer{
		Atoms: m.Atoms.Clone(),
		Bonds: m.Bonds.Clone(),
		Title: m.Title,
	}
	if m.Ids != nil {
		out.Ids = m.Ids.Clone()
	}
	if m.Groups != nil {
		out.Groups = m.Groups.Clone()
	}
	return out
}
