package endf

import "fmt"

// atomicSymbols maps atomic number to element symbol, index 0 is the neutron.
var atomicSymbols = []string{
	"n",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// Symbol returns the element symbol for an atomic number.
func Symbol(z int) (string, error) {
	if z < 0 || z >= len(atomicSymbols) {
		return "", fmt.Errorf("atomic number %d outside known elements", z)
	}
	return atomicSymbols[z], nil
}

// Nuclide identifies an evaluation target by atomic and mass number.
type Nuclide struct {
	Z int
	A int
}

// Name derives the canonical nuclide name, e.g. K39 or Mg0 for the natural
// element.
func (n Nuclide) Name() (string, error) {
	symbol, err := Symbol(n.Z)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", symbol, n.A), nil
}
