// Package chemistry coding=utf-8
// @Project : molstack
// @File    : atom.go
package chemistry

import "encoding/json"

// Vector3 is a plain 3-D vector of float64 coordinates.
//
// No third-party linear-algebra library appeared anywhere in the retrieved
// corpus (the original Rust source leans on nalgebra, which has no
// equivalent exercised by any example repo), so this package implements
// the handful of vector/quaternion operations the substituent-attachment
// algorithm needs directly on top of the standard library's math package.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// MarshalJSON renders the vector as a [x, y, z] array, matching the wire
// format external processes and checkpoints expect.
func (v Vector3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON parses a [x, y, z] array.
func (v *Vector3) UnmarshalJSON(data []byte) error {
	var xyz [3]float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return err
	}
	v.X, v.Y, v.Z = xyz[0], xyz[1], xyz[2]
	return nil
}

// MarshalYAML renders the vector as a [x, y, z] sequence.
func (v Vector3) MarshalYAML() (interface{}, error) {
	return [3]float64{v.X, v.Y, v.Z}, nil
}

// UnmarshalYAML parses a [x, y, z] sequence.
func (v *Vector3) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var xyz [3]float64
	if err := unmarshal(&xyz); err != nil {
		return err
	}
	v.X, v.Y, v.Z = xyz[0], xyz[1], xyz[2]
	return nil
}

// Atom3D is an atomic number plus a 3-D position. It is the element type
// stored (optionally) at each slot of a SparseAtomList.
type Atom3D struct {
	Element  int     `json:"element" yaml:"element"`
	Position Vector3 `json:"position" yaml:"position"`
}

// Symbol returns the element symbol for the atom, or ("", false) if the
// atomic number is not recognized.
func (a Atom3D) Symbol() (string, bool) {
	return ElementNumToSymbol(a.Element)
}

// Valid reports whether the atom's atomic number is recognized. An atom
// that fails this check is treated as a hole wherever it appears.
func (a Atom3D) Valid() bool {
	return ValidatedElementNum(a.Element)
}
