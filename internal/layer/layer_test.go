package layer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/molecule"
)

func atomAt(el int, x float64) *chemistry.Atom3D {
	return &chemistry.Atom3D{Element: el, Position: chemistry.Vector3{X: x}}
}

func singleCarbon() *molecule.MoleculeLayer {
	m := molecule.New()
	m.ExtendTo(1)
	m.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(6, 0)})
	return m
}

func TestLayer_Fill_AppendsAndOffsetsPatch(t *testing.T) {
	base := singleCarbon()
	patch := molecule.New()
	patch.ExtendTo(1)
	patch.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(8, 1)})

	out, err := layer.NewFill(patch).Filter(base)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 6, out.Atoms.ReadAtom(0).Element)
	assert.Equal(t, 8, out.Atoms.ReadAtom(1).Element)
}

// TestLayer_Replace_ReturnsWholeIgnoringBase pins the distinction from
// Fill: Replace's payload is already an absolute, complete molecule (as
// produced by substituent.Attach), so Filter must hand it back unchanged
// rather than re-offsetting it over base the way Fill does.
func TestLayer_Replace_ReturnsWholeIgnoringBase(t *testing.T) {
	base := singleCarbon()
	whole := molecule.New()
	whole.ExtendTo(3)
	whole.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(7, 0), atomAt(8, 1), atomAt(9, 2)})
	whole.Title = "combined"

	out, err := layer.NewReplace(whole).Filter(base)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, 7, out.Atoms.ReadAtom(0).Element)
	assert.Equal(t, 8, out.Atoms.ReadAtom(1).Element)
	assert.Equal(t, 9, out.Atoms.ReadAtom(2).Element)
	assert.Equal(t, "combined", out.Title)

	out.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(100, 0)})
	assert.Equal(t, 7, whole.Atoms.ReadAtom(0).Element, "Filter must clone, not alias, the stored molecule")
}

func TestLayer_SetAtom_ExtendsWhenNeeded(t *testing.T) {
	base := singleCarbon()
	out, err := layer.NewSetAtom(2, atomAt(7, 3)).Filter(base)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, 7, out.Atoms.ReadAtom(2).Element)
	assert.Nil(t, out.Atoms.ReadAtom(1))
}

func TestLayer_SetBond_ExtendsAtomsToMatch(t *testing.T) {
	base := singleCarbon()
	order := 1.0
	out, err := layer.NewSetBond(0, 2, &order).Filter(base)
	require.NoError(t, err)
	assert.Equal(t, out.Bonds.Len(), out.Atoms.Len())
	assert.Equal(t, 1.0, *out.Bonds.ReadBond(0, 2))
	assert.Equal(t, 1.0, *out.Bonds.ReadBond(2, 0))
}

func TestLayer_GroupMap_InstallsGroupAndRejectsOutOfRange(t *testing.T) {
	base := singleCarbon()
	out, err := layer.NewGroupMap([]layer.GroupMapEntry{
		{Name: "ring", Select: layer.SelectManyIndexes([]int{0})},
	}).Filter(base)
	require.NoError(t, err)
	idx, ok := out.Groups.Indexes("ring")
	require.True(t, ok)
	assert.Equal(t, map[int]struct{}{0: {}}, idx)

	_, err = layer.NewGroupMap([]layer.GroupMapEntry{
		{Name: "ring", Select: layer.SelectManyIndexes([]int{5})},
	}).Filter(base)
	var structErr *layer.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, layer.RangeOutOfBounds, structErr.Kind)
}

func TestLayer_IdMap_InstallsId(t *testing.T) {
	base := singleCarbon()
	out, err := layer.NewIdMap([]layer.IdMapEntry{{Name: "c1", Index: 0}}).Filter(base)
	require.NoError(t, err)
	idx, ok := out.Ids.Get("c1")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestLayer_RemoveAtoms_ClearsToHole(t *testing.T) {
	base := singleCarbon()
	out, err := layer.NewRemoveAtoms(layer.SelectManyIndexes([]int{0})).Filter(base)
	require.NoError(t, err)
	assert.Nil(t, out.Atoms.ReadAtom(0))
}

// TestLayer_RemoveBonds_ClearsAllPairwiseBondsAmongSelection pins the
// decided RemoveBonds semantics: every pairwise bond among the selected
// set is cleared, not just bonds to a single pivot.
func TestLayer_RemoveBonds_ClearsAllPairwiseBondsAmongSelection(t *testing.T) {
	base := molecule.New()
	base.ExtendTo(3)
	base.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(6, 0), atomAt(6, 1), atomAt(6, 2)})
	one := 1.0
	base.Bonds.SetBond(0, 1, &one)
	base.Bonds.SetBond(1, 2, &one)
	base.Bonds.SetBond(0, 2, &one)

	out, err := layer.NewRemoveBonds(layer.SelectManyIndexes([]int{0, 1, 2})).Filter(base)
	require.NoError(t, err)
	assert.Nil(t, out.Bonds.ReadBond(0, 1))
	assert.Nil(t, out.Bonds.ReadBond(1, 2))
	assert.Nil(t, out.Bonds.ReadBond(0, 2))
}

func TestLayer_Isometry_TranslatesSelectedAtomsOnly(t *testing.T) {
	base := molecule.New()
	base.ExtendTo(2)
	base.Atoms.SetAtoms(0, []*chemistry.Atom3D{atomAt(6, 0), atomAt(6, 10)})

	transform := chemistry.Translation3(chemistry.Vector3{X: 5})
	out, err := layer.NewIsometry(transform, layer.SelectManyIndexes([]int{0})).Filter(base)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Atoms.ReadAtom(0).Position.X)
	assert.Equal(t, 10.0, out.Atoms.ReadAtom(1).Position.X)
}

func TestLayer_UnknownSelector_ReportsMissingIdAndGroup(t *testing.T) {
	base := singleCarbon()

	_, err := layer.NewGroupMap([]layer.GroupMapEntry{
		{Name: "ring", Select: layer.SelectManyGroup("missing")},
	}).Filter(base)
	var structErr *layer.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, layer.UnknownSelector, structErr.Kind)

	_, err = layer.SelectOneID("missing").ToIndex(base)
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, layer.UnknownSelector, structErr.Kind)
}

func TestLayer_Filter_IsDeterministic(t *testing.T) {
	base := singleCarbon()
	l := layer.NewSetAtom(0, atomAt(7, 9))

	a, err := l.Filter(base)
	require.NoError(t, err)
	b, err := l.Filter(base)
	require.NoError(t, err)

	assert.Equal(t, a.Atoms.Data(), b.Atoms.Data())
}
