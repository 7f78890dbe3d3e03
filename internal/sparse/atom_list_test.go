package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/sparse"
)

func carbon(x, y, z float64) *chemistry.Atom3D {
	return &chemistry.Atom3D{Element: 6, Position: chemistry.Vector3{X: x, Y: y, Z: z}}
}

// TestAtomList_ContinuousIndexRoundTrip pins the universal invariant from
// §8: from_continuous(to_continuous(i)) == i for every present index.
func TestAtomList_ContinuousIndexRoundTrip(t *testing.T) {
	l := sparse.NewAtomList(5)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(0, 0, 0), nil, carbon(1, 0, 0), nil, carbon(2, 0, 0)})

	for i := 0; i < l.Len(); i++ {
		atom := l.ReadAtom(i)
		if atom == nil {
			continue
		}
		ci, ok := l.ToContinuousIndex(i)
		require.True(t, ok)
		back, ok := l.FromContinuousIndex(ci)
		require.True(t, ok)
		assert.Equal(t, i, back)
	}
}

func TestAtomList_ToContinuousIndex_HoleIsNotPresent(t *testing.T) {
	l := sparse.NewAtomList(3)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(0, 0, 0), nil, carbon(1, 0, 0)})

	_, ok := l.ToContinuousIndex(1)
	assert.False(t, ok)

	ci, ok := l.ToContinuousIndex(2)
	require.True(t, ok)
	assert.Equal(t, 1, ci)
}

func TestAtomList_ToContinuousIndex_InvalidElementIsNotPresent(t *testing.T) {
	l := sparse.NewAtomList(2)
	l.SetAtoms(0, []*chemistry.Atom3D{{Element: 0}, carbon(0, 0, 0)})

	_, ok := l.ToContinuousIndex(0)
	assert.False(t, ok)
	ci, ok := l.ToContinuousIndex(1)
	require.True(t, ok)
	assert.Equal(t, 0, ci)
}

func TestAtomList_Offset(t *testing.T) {
	l := sparse.NewAtomList(2)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(0, 0, 0), carbon(1, 0, 0)})

	shifted := l.Offset(3)
	assert.Equal(t, 5, shifted.Len())
	assert.Nil(t, shifted.ReadAtom(0))
	assert.Nil(t, shifted.ReadAtom(2))
	assert.Equal(t, carbon(0, 0, 0), shifted.ReadAtom(3))
	assert.Equal(t, carbon(1, 0, 0), shifted.ReadAtom(4))
}

func TestAtomList_Migrate_OverwritesOnlyPresentSlots(t *testing.T) {
	base := sparse.NewAtomList(2)
	base.SetAtoms(0, []*chemistry.Atom3D{carbon(9, 9, 9), carbon(8, 8, 8)})

	patch := sparse.NewAtomList(3)
	patch.SetAtoms(1, []*chemistry.Atom3D{carbon(1, 1, 1)})

	base.Migrate(patch)

	assert.Equal(t, carbon(9, 9, 9), base.ReadAtom(0))
	assert.Equal(t, carbon(1, 1, 1), base.ReadAtom(1))
	assert.Nil(t, base.ReadAtom(2))
	assert.Equal(t, 3, base.Len())
}

func TestAtomList_MigrateIdentity(t *testing.T) {
	l := sparse.NewAtomList(2)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(1, 2, 3), nil})

	empty := sparse.NewAtomList(0)
	before := l.Clone()
	l.Migrate(empty)

	assert.Equal(t, before.Data(), l.Data())
}

func TestAtomList_UpdateFromContinuousList_Underflow(t *testing.T) {
	l := sparse.NewAtomList(2)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(0, 0, 0), carbon(1, 1, 1)})

	_, err := l.UpdateFromContinuousList([]chemistry.Atom3D{{Element: 6}})
	assert.ErrorIs(t, err, sparse.ErrCapacityUnderflow)
}

func TestAtomList_Clone_IsIndependent(t *testing.T) {
	l := sparse.NewAtomList(1)
	l.SetAtoms(0, []*chemistry.Atom3D{carbon(0, 0, 0)})

	cloned := l.Clone()
	cloned.ReadAtom(0).Position.X = 42

	assert.Equal(t, 0.0, l.ReadAtom(0).Position.X)
}
