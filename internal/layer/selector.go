// Package layer coding=utf-8
// @Project : molstack
// @File    : selector.go
package layer

import (
	"fmt"
	"sort"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/molecule"
)

// SelectMany names a set of atom sparse indices.
type SelectMany struct {
	kind    selectManyKind
	a, b    int // Range: inclusive bounds
	indexes map[int]struct{}
	name    string // Id / Group
}

type selectManyKind int

const (
	selectAll selectManyKind = iota
	selectRange
	selectIndexes
	selectID
	selectGroup
)

func SelectManyAll() SelectMany { return SelectMany{kind: selectAll} }

func SelectManyRange(a, b int) SelectMany { return SelectMany{kind: selectRange, a: a, b: b} }

func SelectManyIndexes(idx []int) SelectMany {
	set := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		set[i] = struct{}{}
	}
	return SelectMany{kind: selectIndexes, indexes: set}
}

func SelectManyID(name string) SelectMany { return SelectMany{kind: selectID, name: name} }

func SelectManyGroup(name string) SelectMany { return SelectMany{kind: selectGroup, name: name} }

// ToIndexes resolves the selector against m, returning the set of sparse
// indices it names. Id/Group selectors fail with UnknownSelector if the
// name is not installed.
func (s SelectMany) ToIndexes(m *molecule.MoleculeLayer) (map[int]struct{}, error) {
	switch s.kind {
	case selectAll:
		out := map[int]struct{}{}
		for i := 0; i < m.Len(); i++ {
			if atom := m.Atoms.ReadAtom(i); atom != nil {
				out[i] = struct{}{}
			}
		}
		return out, nil
	case selectRange:
		out := map[int]struct{}{}
		for i := s.a; i <= s.b; i++ {
			out[i] = struct{}{}
		}
		return out, nil
	case selectIndexes:
		out := make(map[int]struct{}, len(s.indexes))
		for i := range s.indexes {
			out[i] = struct{}{}
		}
		return out, nil
	case selectID:
		if m.Ids == nil {
			return nil, errUnknownSelector(fmt.Sprintf("id %q not found", s.name))
		}
		idx, ok := m.Ids.Get(s.name)
		if !ok {
			return nil, errUnknownSelector(fmt.Sprintf("id %q not found", s.name))
		}
		return map[int]struct{}{idx: {}}, nil
	case selectGroup:
		if m.Groups == nil {
			return nil, errUnknownSelector(fmt.Sprintf("group %q not found", s.name))
		}
		set, ok := m.Groups.Indexes(s.name)
		if !ok {
			return nil, errUnknownSelector(fmt.Sprintf("group %q not found", s.name))
		}
		out := make(map[int]struct{}, len(set))
		for i := range set {
			out[i] = struct{}{}
		}
		return out, nil
	default:
		return nil, errUnknownSelector("malformed selector")
	}
}

// SortedIndexes is a convenience over ToIndexes for callers (tests,
// export) that want deterministic order.
func (s SelectMany) SortedIndexes(m *molecule.MoleculeLayer) ([]int, error) {
	set, err := s.ToIndexes(m)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

type selectManyYAML struct {
	All     *bool  `yaml:"all,omitempty"`
	Range   []int  `yaml:"range,omitempty"`
	Indexes []int  `yaml:"indexes,omitempty"`
	ID      string `yaml:"id,omitempty"`
	Group   string `yaml:"group,omitempty"`
}

// UnmarshalYAML parses one of: {all: true}, {range: [a, b]},
// {indexes: [...]}, {id: name}, {group: name}.
func (s *SelectMany) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form selectManyYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	switch {
	case form.All != nil:
		*s = SelectManyAll()
	case len(form.Range) == 2:
		*s = SelectManyRange(form.Range[0], form.Range[1])
	case form.Indexes != nil:
		*s = SelectManyIndexes(form.Indexes)
	case form.ID != "":
		*s = SelectManyID(form.ID)
	case form.Group != "":
		*s = SelectManyGroup(form.Group)
	default:
		return fmt.Errorf("layer: unrecognized SelectMany form")
	}
	return nil
}

// MarshalYAML renders the selector back to its YAML form.
func (s SelectMany) MarshalYAML() (interface{}, error) {
	switch s.kind {
	case selectAll:
		t := true
		return selectManyYAML{All: &t}, nil
	case selectRange:
		return selectManyYAML{Range: []int{s.a, s.b}}, nil
	case selectIndexes:
		idx, _ := s.SortedIndexes(nil)
		return selectManyYAML{Indexes: idx}, nil
	case selectID:
		return selectManyYAML{ID: s.name}, nil
	case selectGroup:
		return selectManyYAML{Group: s.name}, nil
	default:
		return nil, fmt.Errorf("layer: malformed SelectMany")
	}
}

// SelectOne resolves to a single sparse index: Id(name) or Index(i).
type SelectOne struct {
	kind  selectOneKind
	index int
	name  string
}

type selectOneKind int

const (
	selectOneIndex selectOneKind = iota
	selectOneID
)

func SelectOneIndex(i int) SelectOne { return SelectOne{kind: selectOneIndex, index: i} }

func SelectOneID(name string) SelectOne { return SelectOne{kind: selectOneID, name: name} }

// ToIndex resolves the selector against m.
func (s SelectOne) ToIndex(m *molecule.MoleculeLayer) (int, error) {
	switch s.kind {
	case selectOneIndex:
		return s.index, nil
	case selectOneID:
		if m.Ids == nil {
			return 0, errUnknownSelector(fmt.Sprintf("id %q not found", s.name))
		}
		idx, ok := m.Ids.Get(s.name)
		if !ok {
			return 0, errUnknownSelector(fmt.Sprintf("id %q not found", s.name))
		}
		return idx, nil
	default:
		return 0, errUnknownSelector("malformed selector")
	}
}

// GetAtom resolves the selector and reads the atom at that index, or nil
// if the selector doesn't resolve to a present atom.
func (s SelectOne) GetAtom(m *molecule.MoleculeLayer) *Resolved {
	idx, err := s.ToIndex(m)
	if err != nil {
		return nil
	}
	atom := m.Atoms.ReadAtom(idx)
	if atom == nil {
		return nil
	}
	return &Resolved{Index: idx, Position: atom.Position}
}

// Resolved is the outcome of resolving a SelectOne to a present atom:
// its sparse index and position.
type Resolved struct {
	Index    int
	Position chemistry.Vector3
}

type selectOneYAML struct {
	Index *int   `yaml:"index,omitempty"`
	ID    string `yaml:"id,omitempty"`
}

func (s *SelectOne) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var form selectOneYAML
	if err := unmarshal(&form); err != nil {
		return err
	}
	switch {
	case form.Index != nil:
		*s = SelectOneIndex(*form.Index)
	case form.ID != "":
		*s = SelectOneID(form.ID)
	default:
		return fmt.Errorf("layer: unrecognized SelectOne form")
	}
	return nil
}

func (s SelectOne) MarshalYAML() (interface{}, error) {
	switch s.kind {
	case selectOneIndex:
		i := s.index
		return selectOneYAML{Index: &i}, nil
	case selectOneID:
		return selectOneYAML{ID: s.name}, nil
	default:
		return nil, fmt.Errorf("layer: malformed SelectOne")
	}
}
