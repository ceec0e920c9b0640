// Package catalog holds the in-memory wire reference tables the winding
// engine consumes. A catalog is populated once, from the builtin table
// and optional CSV or Excel imports, and is immutable afterwards, so
// concurrent pipeline runs may share it without locking.
package catalog

import (
	"sort"

	"github.com/opencoil/coilwinder/internal/model"
)

// Catalog is an immutable, name-keyed wire table.
type Catalog struct {
	wires  []model.Wire
	byName map[string]model.Wire
}

// New builds a catalog from the given wires. Later entries shadow
// earlier ones with the same name.
func New(wires []model.Wire) *Catalog {
	c := &Catalog{
		wires:  append([]model.Wire(nil), wires...),
		byName: make(map[string]model.Wire, len(wires)),
	}
	for _, w := range c.wires {
		c.byName[w.Name] = w
	}
	return c
}

// Builtin returns a catalog of standard enamelled wire sizes.
func Builtin() *Catalog {
	return New(builtinWires)
}

// With returns a new catalog extended by the given wires; the receiver
// is left untouched.
func (c *Catalog) With(wires ...model.Wire) *Catalog {
	return New(append(append([]model.Wire(nil), c.wires...), wires...))
}

// Find returns the wire with the given name.
func (c *Catalog) Find(name string) (model.Wire, bool) {
	w, ok := c.byName[name]
	return w, ok
}

// Names returns all wire names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wires returns the catalog entries in insertion order.
func (c *Catalog) Wires() []model.Wire {
	return append([]model.Wire(nil), c.wires...)
}

// builtinWires lists common grade-1 enamelled rounds (IEC 60317 outer
// diameters), a few litz constructions and foils.
var builtinWires = []model.Wire{
	NewRound("0.10 mm", 0.10, 0.118),
	NewRound("0.14 mm", 0.14, 0.160),
	NewRound("0.20 mm", 0.20, 0.224),
	NewRound("0.25 mm", 0.25, 0.277),
	NewRound("0.315 mm", 0.315, 0.345),
	NewRound("0.40 mm", 0.40, 0.434),
	NewRound("0.50 mm", 0.50, 0.540),
	NewRound("0.63 mm", 0.63, 0.676),
	NewRound("0.80 mm", 0.80, 0.850),
	NewRound("1.00 mm", 1.00, 1.057),
	NewRound("1.25 mm", 1.25, 1.313),
	NewRound("1.50 mm", 1.50, 1.570),
	NewLitz("litz 20x0.10 mm", 0.10, 20, 0.60),
	NewLitz("litz 60x0.10 mm", 0.10, 60, 1.00),
	NewLitz("litz 105x0.08 mm", 0.08, 105, 1.20),
	NewFoil("foil 0.10 mm", 0.10, 10.0),
	NewFoil("foil 0.20 mm", 0.20, 10.0),
}

// NewRound returns a round catalog wire.
func NewRound(name string, conducting, outer float64) model.Wire {
	return model.NewRoundWire(name, conducting, outer)
}

// NewLitz returns a litz catalog wire from its strand diameter, strand
// count and bundle outer diameter.
func NewLitz(name string, strand float64, strands int, outer float64) model.Wire {
	return model.Wire{
		Name:               name,
		Type:               model.WireLitz,
		ConductingDiameter: model.Dim(strand),
		OuterDiameter:      model.Dim(outer),
		Strands:            strands,
		Grade:              1,
	}
}

// NewFoil returns a foil catalog wire from its thickness and height.
func NewFoil(name string, thickness, height float64) model.Wire {
	return model.NewFoilWire(name, thickness, height)
}
