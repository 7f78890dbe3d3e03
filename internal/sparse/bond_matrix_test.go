package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/sparse"
)

func order(v float64) *float64 { return &v }

// TestBondMatrix_Symmetric pins read_bond(a,b) == read_bond(b,a).
func TestBondMatrix_Symmetric(t *testing.T) {
	m := sparse.NewBondMatrix(3)
	m.SetBond(0, 2, order(1.5))

	assert.Equal(t, m.ReadBond(0, 2), m.ReadBond(2, 0))
	require.NotNil(t, m.ReadBond(0, 2))
	assert.Equal(t, 1.5, *m.ReadBond(0, 2))
}

// TestBondMatrix_Offset pins M.offset(n).len() == M.len() + n, and every
// pair with index < n reads None.
func TestBondMatrix_Offset(t *testing.T) {
	m := sparse.NewBondMatrix(2)
	m.SetBond(0, 1, order(2.0))

	shifted := m.Offset(3)
	assert.Equal(t, m.Len()+3, shifted.Len())

	for a := 0; a < 3; a++ {
		for b := 0; b < shifted.Len(); b++ {
			assert.Nil(t, shifted.ReadBond(a, b))
		}
	}
	assert.Equal(t, 2.0, *shifted.ReadBond(3, 4))
}

func TestBondMatrix_SetBond_ClearsOnNil(t *testing.T) {
	m := sparse.NewBondMatrix(2)
	m.SetBond(0, 1, order(1.0))
	m.SetBond(0, 1, nil)
	assert.Nil(t, m.ReadBond(0, 1))
	assert.Nil(t, m.ReadBond(1, 0))
}

func TestBondMatrix_Migrate_PrefersOther(t *testing.T) {
	base := sparse.NewBondMatrix(2)
	base.SetBond(0, 1, order(1.0))

	patch := sparse.NewBondMatrix(2)
	patch.SetBond(0, 1, order(2.0))

	base.Migrate(patch)
	assert.Equal(t, 2.0, *base.ReadBond(0, 1))
}

func TestBondMatrix_ToContinuousList_SkipsZeroAndAbsentAtoms(t *testing.T) {
	atoms := sparse.NewAtomList(3)
	atoms.SetAtoms(0, []*chemistry.Atom3D{
		{Element: 6},
		{Element: 6},
		nil,
	})

	m := sparse.NewBondMatrix(3)
	m.SetBond(0, 1, order(1.0))
	m.SetBond(1, 2, order(0.0))

	triples := m.ToContinuousList(atoms)
	require.Len(t, triples, 1)
	assert.Equal(t, sparse.BondTriple{A: 0, B: 1, Order: 1.0}, triples[0])
}
