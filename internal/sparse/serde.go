// Package sparse coding=utf-8
// @Project : molstack
// @File    : serde.go
package sparse

import (
	"encoding/json"

	"github.com/cx-luo/molstack/internal/chemistry"
)

// MarshalJSON renders the list as a JSON array with null holes.
func (l AtomList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.atoms)
}

// UnmarshalJSON parses a JSON array with null holes.
func (l *AtomList) UnmarshalJSON(data []byte) error {
	var atoms []*chemistry.Atom3D
	if err := json.Unmarshal(data, &atoms); err != nil {
		return err
	}
	l.atoms = atoms
	return nil
}

// MarshalYAML renders the list as a YAML sequence with null holes.
func (l AtomList) MarshalYAML() (interface{}, error) {
	return l.atoms, nil
}

// UnmarshalYAML parses a YAML sequence with null holes.
func (l *AtomList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var atoms []*chemistry.Atom3D
	if err := unmarshal(&atoms); err != nil {
		return err
	}
	l.atoms = atoms
	return nil
}

// MarshalJSON renders the matrix as nested JSON arrays with null cells.
func (m BondMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.rows)
}

// UnmarshalJSON parses nested JSON arrays with null cells.
func (m *BondMatrix) UnmarshalJSON(data []byte) error {
	var rows [][]*float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	m.rows = rows
	m.size = len(rows)
	return nil
}

// MarshalYAML renders the matrix as nested YAML sequences with null cells.
func (m BondMatrix) MarshalYAML() (interface{}, error) {
	return m.rows, nil
}

// UnmarshalYAML parses nested YAML sequences with null cells.
func (m *BondMatrix) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var rows [][]*float64
	if err := unmarshal(&rows); err != nil {
		return err
	}
	m.rows = rows
	m.size = len(rows)
	return nil
}

// GobEncode/GobDecode let AtomList and BondMatrix flow through
// checkpoint's gob-encoded WorkflowData snapshots despite their
// unexported backing fields — both just delegate to the JSON form
// already defined above.

func (l AtomList) GobEncode() ([]byte, error) { return l.MarshalJSON() }

func (l *AtomList) GobDecode(data []byte) error { return l.UnmarshalJSON(data) }

func (m BondMatrix) GobEncode() ([]byte, error) { return m.MarshalJSON() }

func (m *BondMatrix) GobDecode(data []byte) error { return m.UnmarshalJSON(data) }
