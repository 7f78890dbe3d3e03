// Package sparse coding=utf-8
// @Project : molstack
// @File    : bond_matrix.go
package sparse

// BondMatrix is an N×N symmetric matrix of optional bond orders.
// nil means "no bond declared"; a pointer to 0 means "declared absent";
// a pointer to a positive value means a present bond of that order.
type BondMatrix struct {
	rows [][]*float64
	size int
}

// NewBondMatrix creates an n×n matrix with every cell unset (nil).
func NewBondMatrix(n int) *BondMatrix {
	return &BondMatrix{rows: makeRows(n, nil), size: n}
}

// NewBondMatrixFilled creates an n×n matrix with every cell declared
// absent (Some(0.0) in the original terminology).
func NewBondMatrixFilled(n int) *BondMatrix {
	zero := 0.0
	return &BondMatrix{rows: makeRows(n, &zero), size: n}
}

func makeRows(n int, fill *float64) [][]*float64 {
	rows := make([][]*float64, n)
	for i := range rows {
		row := make([]*float64, n)
		for j := range row {
			if fill != nil {
				v := *fill
				row[j] = &v
			}
		}
		rows[i] = row
	}
	return rows
}

// Len returns the matrix dimension.
func (m *BondMatrix) Len() int {
	return m.size
}

// ExtendTo grows the matrix to capacity×capacity if it is smaller,
// padding new cells with nil (no bond declared).
func (m *BondMatrix) ExtendTo(capacity int) {
	m.extendTo(capacity)
}

func (m *BondMatrix) extendTo(capacity int) {
	if capacity <= m.size {
		return
	}
	for i := range m.rows {
		m.rows[i] = append(m.rows[i], make([]*float64, capacity-m.size)...)
	}
	for i := m.size; i < capacity; i++ {
		m.rows = append(m.rows, make([]*float64, capacity))
	}
	m.size = capacity
}

// Offset prepends n rows and columns, shifting every existing (a,b) pair
// to (a+n, b+n).
func (m *BondMatrix) Offset(n int) *BondMatrix {
	out := NewBondMatrix(n + m.size)
	for a := 0; a < m.size; a++ {
		for b := 0; b < m.size; b++ {
			if v := m.rows[a][b]; v != nil {
				out.rows[a+n][b+n] = v
			}
		}
	}
	return out
}

// ReadBond returns the bond order between a and b, or nil if unset or
// out of range.
func (m *BondMatrix) ReadBond(a, b int) *float64 {
	if a < 0 || b < 0 || a >= m.size || b >= m.size {
		return nil
	}
	return m.rows[a][b]
}

// GetNeighbors returns the row for center, or nil if center is out of
// range. The returned slice must not be mutated by the caller.
func (m *BondMatrix) GetNeighbors(center int) []*float64 {
	if center < 0 || center >= m.size {
		return nil
	}
	return m.rows[center]
}

// SetBond sets the (symmetric) bond between a and b, extending the matrix
// as needed. order == nil clears the cell.
func (m *BondMatrix) SetBond(a, b int, order *float64) {
	max := a
	if b > max {
		max = b
	}
	m.extendTo(max + 1)
	m.rows[a][b] = order
	m.rows[b][a] = order
}

// Migrate overwrites each cell with other's value wherever other has it
// set, leaving self's value where other does not.
func (m *BondMatrix) Migrate(other *BondMatrix) {
	for row := 0; row < other.Len(); row++ {
		for col := row; col < other.Len(); col++ {
			bond := other.ReadBond(row, col)
			if bond == nil {
				bond = m.ReadBond(row, col)
			}
			m.SetBond(row, col, bond)
		}
	}
}

// BondTriple is a materialized (continuous-index, continuous-index,
// order) bond for export, with ci <= cj.
type BondTriple struct {
	A, B  int
	Order float64
}

// ToContinuousList emits one triple per cell where both endpoints
// materialize to continuous indices and the order is non-zero.
func (m *BondMatrix) ToContinuousList(atoms *AtomList) []BondTriple {
	var out []BondTriple
	for row := 0; row < m.size; row++ {
		for col := row; col < m.size; col++ {
			ci, okA := atoms.ToContinuousIndex(row)
			cj, okB := atoms.ToContinuousIndex(col)
			bond := m.ReadBond(row, col)
			if okA && okB && bond != nil && *bond != 0 {
				out = append(out, BondTriple{A: ci, B: cj, Order: *bond})
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *BondMatrix) Clone() *BondMatrix {
	out := NewBondMatrix(m.size)
	for a := 0; a < m.size; a++ {
		for b := 0; b < m.size; b++ {
			if v := m.rows[a][b]; v != nil {
				vv := *v
				out.rows[a][b] = &vv
			}
		}
	}
	return out
}
