// Package chemistry coding=utf-8
// @Project : molstack
// @File    : elements.go
package chemistry

// symbolTable is indexed by atomic number; index 0 is unused so that a
// zero-value atomic number (never a valid element) naturally misses.
var symbolTable = []string{
	"",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// MaxElementNum is the highest atomic number this table recognizes.
const MaxElementNum = 118

// ValidatedElementNum reports whether num is a recognized atomic number
// (1..118 inclusive). An atom whose number fails this check is treated as
// a hole by SparseAtomList, even if the slot itself is present.
func ValidatedElementNum(num int) bool {
	return num >= 1 && num <= MaxElementNum
}

// ElementNumToSymbol returns the element symbol for num, or ("", false)
// if num is not a recognized atomic number.
func ElementNumToSymbol(num int) (string, bool) {
	if !ValidatedElementNum(num) {
		return "", false
	}
	return symbolTable[num], true
}
