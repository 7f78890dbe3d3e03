package substituent

import (
	"math"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/groupset"
	"github.com/cx-luo/molstack/internal/idset"
	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/molecule"
)

// Substituent is a fragment ready to be grafted onto a target molecule:
// Structure carries the fragment's atoms/bonds, OnBody names the atom
// that merges into the target's entry point, Direction names the atom
// that defines the fragment's outward-facing direction, and Name is the
// substituent's label (used both for group-name prefixing and for the
// Named output key a Substituent runner assigns it).
type Substituent struct {
	Structure *molecule.MoleculeLayer
	OnBody    layer.SelectOne
	Direction layer.SelectOne
	Name      string
}

// Attach grafts sub onto target: target's entry atom is replaced by
// sub's on_body atom, rotated and translated so sub's direction atom
// lines up with target's own exit direction, per the attachment
// algorithm. entry and exit select atoms in target.
//
// Pivot choice: rotation and the first translation pivot on the
// substituent's direction atom, not on_body. This mirrors the original
// implementation's actual behavior rather than the more "obvious" other
// reading (pivot on on_body) — the two differ whenever direction and
// on_body are not both on the rotation axis. The scenario-1 test uses
// parallel a and b, so its rotation is the identity and both pivots give
// the same result there.
func Attach(target *molecule.MoleculeLayer, entry, exit layer.SelectOne, sub Substituent) (*molecule.MoleculeLayer, error) {
	targetEntry := entry.GetAtom(target)
	if targetEntry == nil {
		return nil, errKind(EntryAtomNotFoundInTarget)
	}
	targetExit := exit.GetAtom(target)
	if targetExit == nil {
		return nil, errKind(ExitAtomNotFoundInTarget)
	}
	subDirection := sub.Direction.GetAtom(sub.Structure)
	if subDirection == nil {
		return nil, errKind(DirectionAtomNotFoundInSubstituent)
	}
	subOnBody := sub.OnBody.GetAtom(sub.Structure)
	if subOnBody == nil {
		return nil, errKind(OnBodyAtomNotFoundInSubstituent)
	}

	a := targetExit.Position.Sub(targetEntry.Position)
	b := subDirection.Position.Sub(subOnBody.Position)

	axis := b.Cross(a)
	if axis.Dot(axis) == 0 {
		axis = chemistry.Vector3{X: 1}
	}
	denom := math.Sqrt(a.Dot(a)) * math.Sqrt(b.Dot(b))
	angle := math.Acos(a.Dot(b) / denom)
	if math.IsNaN(angle) {
		angle = math.Pi
	}
	rotation := chemistry.QuaternionFromAxisAngle(axis, angle)

	pivot := subDirection.Position
	transform := func(p chemistry.Vector3) chemistry.Vector3 {
		return rotation.Rotate(p.Sub(pivot)).Add(targetExit.Position)
	}

	transformed := sub.Structure.Clone()
	all := map[int]struct{}{}
	for i := 0; i < transformed.Len(); i++ {
		if transformed.Atoms.ReadAtom(i) != nil {
			all[i] = struct{}{}
		}
	}
	transformed.Atoms.Isometry(transform, all)

	onBodyIndex, err := sub.OnBody.ToIndex(sub.Structure)
	if err != nil {
		return nil, errKind(OnBodyAtomNotFoundInSubstituent)
	}
	directionIndex, err := sub.Direction.ToIndex(sub.Structure)
	if err != nil {
		return nil, errKind(DirectionAtomNotFoundInSubstituent)
	}

	onBodyTransformed := *transformed.Atoms.ReadAtom(onBodyIndex)

	transformed.Atoms.SetAtoms(onBodyIndex, []*chemistry.Atom3D{nil})
	transformed.Atoms.SetAtoms(directionIndex, []*chemistry.Atom3D{nil})

	targetLen := target.Len()
	offsetStructure := transformed.Offset(targetLen)
	if offsetStructure.Groups == nil {
		offsetStructure.Groups = groupset.New()
	}
	offsetStructure.Groups = offsetStructure.Groups.Rename(sub.Name)
	offsetStructure.Ids = idset.New()
	offsetStructure.Title = target.Title + "_" + sub.Name

	entryIndex, err := entry.ToIndex(target)
	if err != nil {
		return nil, errKind(EntryAtomNotFoundInTarget)
	}

	out := target.Clone()
	out.Migrate(offsetStructure)

	out.Atoms.SetAtoms(entryIndex, []*chemistry.Atom3D{&onBodyTransformed})

	onBodyOffsetIndex := onBodyIndex + targetLen
	for neighbor, order := range offsetStructure.Bonds.GetNeighbors(onBodyOffsetIndex) {
		if order == nil {
			continue
		}
		out.Bonds.SetBond(entryIndex, neighbor, order)
	}

	// Migrate deliberately does not carry Title (see MoleculeLayer.Migrate),
	// so out still holds target's title at this point; set it explicitly.
	out.Title = offsetStructure.Title

	return out, nil
}
