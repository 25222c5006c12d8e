// Package mattable provides per-element transport coefficients for a host
// material: the dispersion coefficient D, the distribution coefficient K_d
// and the solubility limit S. Models hold the table as a shared read-only
// reference and query it by element identifier (isotope / 1000).
package mattable

import (
	"errors"
	"fmt"
)

// ErrMissingCoefficient is returned when an element has no table entry.
// Transport math must fail rather than fabricate a default coefficient.
var ErrMissingCoefficient = errors.New("mattable: no entry for element")

// Coefficients holds the transport properties of one element in the host
// material.
type Coefficients struct {
	D   float64 `yaml:"d"`   // dispersion coefficient [m^2/s]
	KD  float64 `yaml:"kd"`  // distribution coefficient [kg/kg]
	Sol float64 `yaml:"sol"` // solubility limit [kg/m^3]
}

type Table struct {
	mat     string
	entries map[int]Coefficients
}

func New(mat string, entries map[int]Coefficients) *Table {
	copied := make(map[int]Coefficients, len(entries))
	for elem, c := range entries {
		copied[elem] = c
	}
	return &Table{mat: mat, entries: copied}
}

// Builtin returns a reference table for a generic clay host material. The
// values are representative, not site-specific.
func Builtin() *Table {
	return New("clay", map[int]Coefficients{
		53: {D: 1.0e-9, KD: 0.001, Sol: 1.0},    // iodine
		55: {D: 8.0e-10, KD: 0.05, Sol: 1.0},    // cesium
		92: {D: 4.9e-10, KD: 0.1, Sol: 0.0024},  // uranium
		93: {D: 4.0e-10, KD: 0.5, Sol: 0.00004}, // neptunium
		94: {D: 3.5e-10, KD: 1.0, Sol: 0.00002}, // plutonium
		95: {D: 3.0e-10, KD: 1.5, Sol: 0.00001}, // americium
	})
}

func (t *Table) Material() string { return t.mat }

func (t *Table) lookup(elem int) (Coefficients, error) {
	c, ok := t.entries[elem]
	if !ok {
		return Coefficients{}, fmt.Errorf("%w %d in material %q", ErrMissingCoefficient, elem, t.mat)
	}
	return c, nil
}

// D returns the dispersion coefficient for an element.
func (t *Table) D(elem int) (float64, error) {
	c, err := t.lookup(elem)
	return c.D, err
}

// KD returns the distribution coefficient for an element.
func (t *Table) KD(elem int) (float64, error) {
	c, err := t.lookup(elem)
	return c.KD, err
}

// Sol returns the solubility limit for an element.
func (t *Table) Sol(elem int) (float64, error) {
	c, err := t.lookup(elem)
	return c.Sol, err
}
