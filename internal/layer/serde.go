// Package layer coding=utf-8
// @Project : molstack
// @File    : serde.go
package layer

import (
	"fmt"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/molecule"
)

// groupMapEntryYAML / idMapEntryYAML are the wire shapes of a GroupMap /
// IdMap layer's entry list: [{name, select}, ...] for groups,
// [{name, index}, ...] for ids.
type groupMapEntryYAML struct {
	Name   string     `yaml:"name"`
	Select SelectMany `yaml:"select"`
}

type idMapEntryYAML struct {
	Name  string `yaml:"name"`
	Index int    `yaml:"index"`
}

type setAtomYAML struct {
	Index int               `yaml:"index"`
	Atom  *chemistry.Atom3D `yaml:"atom"`
}

type setBondYAML struct {
	A     int      `yaml:"a"`
	B     int      `yaml:"b"`
	Order *float64 `yaml:"order"`
}

type isometryYAML struct {
	Isometry chemistry.Isometry3 `yaml:"isometry"`
	Select   SelectMany          `yaml:"select"`
}

// layerYAML is the tagged-union wire form: exactly one field is set.
type layerYAML struct {
	Fill        *molecule.MoleculeLayer `yaml:"fill,omitempty"`
	SetAtom     *setAtomYAML            `yaml:"set_atom,omitempty"`
	SetBond     *setBondYAML            `yaml:"set_bond,omitempty"`
	GroupMap    []groupMapEntryYAML     `yaml:"group_map,omitempty"`
	IdMap       []idMapEntryYAML        `yaml:"id_map,omitempty"`
	RemoveAtoms *SelectMany             `yaml:"remove_atoms,omitempty"`
	RemoveBonds *SelectMany             `yaml:"remove_bonds,omitempty"`
	Isometry    *isometryYAML           `yaml:"isometry,omitempty"`
	Replace     *molecule.MoleculeLayer `yaml:"replace,omitempty"`
}

func (l *Layer) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form layerYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	switch {
	case form.Fill != nil:
		*l = NewFill(form.Fill)
	case form.SetAtom != nil:
		*l = NewSetAtom(form.SetAtom.Index, form.SetAtom.Atom)
	case form.SetBond != nil:
		*l = NewSetBond(form.SetBond.A, form.SetBond.B, form.SetBond.Order)
	case form.GroupMap != nil:
		entries := make([]GroupMapEntry, len(form.GroupMap))
		for i, e := range form.GroupMap {
			entries[i] = GroupMapEntry{Name: e.Name, Select: e.Select}
		}
		*l = NewGroupMap(entries)
	case form.IdMap != nil:
		entries := make([]IdMapEntry, len(form.IdMap))
		for i, e := range form.IdMap {
			entries[i] = IdMapEntry{Name: e.Name, Index: e.Index}
		}
		*l = NewIdMap(entries)
	case form.RemoveAtoms != nil:
		*l = NewRemoveAtoms(*form.RemoveAtoms)
	case form.RemoveBonds != nil:
		*l = NewRemoveBonds(*form.RemoveBonds)
	case form.Isometry != nil:
		*l = NewIsometry(form.Isometry.Isometry, form.Isometry.Select)
	case form.Replace != nil:
		*l = NewReplace(form.Replace)
	default:
		return fmt.Errorf("layer: unrecognized Layer form")
	}
	return nil
}

func (l Layer) MarshalYAML() (interface{}, error) {
	var form layerYAML
	switch l.Kind {
	case KindFill:
		form.Fill = l.Fill
	case KindSetAtom:
		form.SetAtom = &setAtomYAML{Index: l.SetAtomIndex, Atom: l.SetAtomValue}
	case KindSetBond:
		form.SetBond = &setBondYAML{A: l.SetBondA, B: l.SetBondB, Order: l.SetBondOrder}
	case KindGroupMap:
		entries := make([]groupMapEntryYAML, len(l.GroupMapEntries))
		for i, e := range l.GroupMapEntries {
			entries[i] = groupMapEntryYAML{Name: e.Name, Select: e.Select}
		}
		form.GroupMap = entries
	case KindIdMap:
		entries := make([]idMapEntryYAML, len(l.IdMapEntries))
		for i, e := range l.IdMapEntries {
			entries[i] = idMapEntryYAML{Name: e.Name, Index: e.Index}
		}
		form.IdMap = entries
	case KindRemoveAtoms:
		form.RemoveAtoms = &l.RemoveSelector
	case KindRemoveBonds:
		form.RemoveBonds = &l.RemoveSelector
	case KindIsometry:
		form.Isometry = &isometryYAML{Isometry: l.IsometryTransform, Select: l.IsometrySelect}
	case KindReplace:
		form.Replace = l.Replace
	default:
		return nil, fmt.Errorf("layer: malformed Layer")
	}
	return form, nil
}
