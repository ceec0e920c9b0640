package model

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DesignWinding is one winding entry of a design file. The wire is
// referenced by catalog name or specified inline; inline wins when both
// are present. A winding after the first may declare a turns ratio
// instead of an explicit turn count.
type DesignWinding struct {
	Name       string    `toml:"name"`
	Turns      int       `toml:"turns"`
	TurnsRatio float64   `toml:"turns_ratio"` // primary turns over this winding's turns
	Isolation  string    `toml:"isolation"`
	Wire       string    `toml:"wire"`
	WireSpec   *Wire     `toml:"wire_spec"`
	Margin     []float64 `toml:"margin"` // optional [start, end] margin tape in mm
}

// DesignWind holds the partitioning parameters of a design file.
type DesignWind struct {
	Repetitions int                `toml:"repetitions"`
	Pattern     []int              `toml:"pattern"`
	Proportions map[string]float64 `toml:"proportions"`
}

// Design is the TOML document describing one winding job: the window,
// the windings, the interleaving parameters and optional setting
// overrides.
type Design struct {
	Name       string          `toml:"name"`
	Bobbin     Bobbin          `toml:"bobbin"`
	Windings   []DesignWinding `toml:"winding"`
	Wind       DesignWind      `toml:"wind"`
	Settings   *WindSettings   `toml:"settings"`
	Insulation *InsulationSpec `toml:"insulation"`
}

// LoadDesign reads and validates a design file.
func LoadDesign(path string) (*Design, error) {
	var d Design
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("cannot parse design file: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the design for structural problems and fills defaults:
// one repetition, a one-slot-per-winding pattern, and index-derived
// isolation sides.
func (d *Design) Validate() error {
	if d.Bobbin.WindowWidth <= 0 || d.Bobbin.WindowHeight <= 0 {
		return fmt.Errorf("bobbin window dimensions must be positive, got %.3f x %.3f",
			d.Bobbin.WindowWidth, d.Bobbin.WindowHeight)
	}
	if len(d.Windings) == 0 {
		return fmt.Errorf("design has no windings")
	}
	if err := d.resolveTurnsRatios(); err != nil {
		return err
	}
	for i, w := range d.Windings {
		if w.Name == "" {
			return fmt.Errorf("winding %d has no name", i)
		}
		if w.Turns <= 0 {
			return fmt.Errorf("winding %q must have a positive turn count", w.Name)
		}
		if w.Wire == "" && w.WireSpec == nil {
			return fmt.Errorf("winding %q references no wire", w.Name)
		}
		if len(w.Margin) != 0 && len(w.Margin) != 2 {
			return fmt.Errorf("winding %q margin must be a [start, end] pair", w.Name)
		}
	}
	if d.Wind.Repetitions == 0 {
		d.Wind.Repetitions = 1
	}
	if d.Wind.Repetitions < 1 {
		return fmt.Errorf("repetitions must be at least 1, got %d", d.Wind.Repetitions)
	}
	if len(d.Wind.Pattern) == 0 {
		for i := range d.Windings {
			d.Wind.Pattern = append(d.Wind.Pattern, i)
		}
	}
	if err := Pattern(d.Wind.Pattern).Validate(len(d.Windings)); err != nil {
		return err
	}
	for i, w := range d.Windings {
		if Pattern(d.Wind.Pattern).Occurrences(i, 1) == 0 {
			return fmt.Errorf("winding %q never appears in the pattern, its turns cannot be placed", w.Name)
		}
	}
	for name := range d.Wind.Proportions {
		if d.windingIndex(name) < 0 {
			return fmt.Errorf("proportion references unknown winding %q", name)
		}
	}
	return nil
}

// resolveTurnsRatios fills the turn count of windings declared by turns
// ratio. An explicit turn count wins over a ratio.
func (d *Design) resolveTurnsRatios() error {
	for i := range d.Windings {
		w := &d.Windings[i]
		if w.Turns != 0 || w.TurnsRatio == 0 {
			continue
		}
		if i == 0 {
			return fmt.Errorf("winding %q: the primary winding needs an explicit turn count", w.Name)
		}
		if d.Windings[0].Turns <= 0 {
			return fmt.Errorf("winding %q declares a turns ratio but the primary winding has no turn count", w.Name)
		}
		counts, err := TurnsFromRatios(d.Windings[0].Turns, []float64{w.TurnsRatio})
		if err != nil {
			return fmt.Errorf("winding %q: %w", w.Name, err)
		}
		w.Turns = counts[1]
	}
	return nil
}

// EffectiveSettings returns the design's settings merged over the
// defaults.
func (d *Design) EffectiveSettings() WindSettings {
	if d.Settings == nil {
		return DefaultSettings()
	}
	return *d.Settings
}

// Proportions converts the name-keyed proportion map to winding indices.
func (d *Design) Proportions() map[int]float64 {
	out := make(map[int]float64, len(d.Wind.Proportions))
	for name, p := range d.Wind.Proportions {
		if idx := d.windingIndex(name); idx >= 0 {
			out[idx] = p
		}
	}
	return out
}

// MarginPairs returns one [start, end] margin-tape pair per pattern
// slot, taken from the winding each slot carries.
func (d *Design) MarginPairs() [][2]float64 {
	pairs := make([][2]float64, len(d.Wind.Pattern))
	for slot, widx := range d.Wind.Pattern {
		m := d.Windings[widx].Margin
		if len(m) == 2 {
			pairs[slot] = [2]float64{m[0], m[1]}
		}
	}
	return pairs
}

func (d *Design) windingIndex(name string) int {
	for i, w := range d.Windings {
		if w.Name == name {
			return i
		}
	}
	return -1
}
