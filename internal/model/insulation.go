package model

// InsulationStandard defines the minimum insulation build required
// between windings of differing isolation sides under a safety standard.
// Distances are in mm.
type InsulationStandard struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MinThickness float64 `json:"min_thickness"` // per insulation section
	MinLayers    int     `json:"min_layers"`    // tape wraps per section
	Creepage     float64 `json:"creepage"`      // minimum margin-tape creepage path
	Clearance    float64 `json:"clearance"`
}

// Built-in insulation standards
var InsulationStandards = []InsulationStandard{
	{
		Name:         "IEC 60664-1",
		Description:  "Insulation coordination for low-voltage systems",
		MinThickness: 0.4,
		MinLayers:    3,
		Creepage:     6.4,
		Clearance:    4.0,
	},
	{
		Name:         "IEC 61558-1",
		Description:  "Safety of transformers, reactors and power supplies",
		MinThickness: 0.3,
		MinLayers:    3,
		Creepage:     5.0,
		Clearance:    3.0,
	},
	{
		Name:         "IEC 62368-1",
		Description:  "Audio/video and ICT equipment safety",
		MinThickness: 0.4,
		MinLayers:    2,
		Creepage:     5.0,
		Clearance:    4.0,
	},
	{
		Name:         "IEC 60335-1",
		Description:  "Household and similar electrical appliances",
		MinThickness: 0.5,
		MinLayers:    3,
		Creepage:     8.0,
		Clearance:    6.0,
	},
	{
		Name:         "Basic",
		Description:  "Functional insulation only, no reinforced requirements",
		MinThickness: 0.0,
		MinLayers:    1,
		Creepage:     0.0,
		Clearance:    0.0,
	},
}

// GetStandard returns an insulation standard by name, or the Basic
// standard if not found.
func GetStandard(name string) InsulationStandard {
	for _, s := range InsulationStandards {
		if s.Name == name {
			return s
		}
	}
	return InsulationStandards[len(InsulationStandards)-1] // Basic (last one)
}

// GetStandardNames returns a list of all available standard names.
func GetStandardNames() []string {
	var names []string
	for _, s := range InsulationStandards {
		names = append(names, s.Name)
	}
	return names
}

// InsulationSpec describes the insulation placed between two isolation
// sides: a material, a total thickness and a wrap count. Standard, when
// set, enforces that standard's minimums on the resolved values.
type InsulationSpec struct {
	Material  string    `json:"material" toml:"material"`
	Thickness Dimension `json:"thickness" toml:"thickness"` // total, mm
	Layers    int       `json:"layers" toml:"layers"`
	Standard  string    `json:"standard,omitempty" toml:"standard"`
}

// Resolve returns the working thickness and layer count, raised to the
// configured standard's minimums where necessary. A spec with no
// thickness at all resolves to the standard's minimum build.
func (s InsulationSpec) Resolve() (thickness float64, layers int, err error) {
	std := GetStandard(s.Standard)
	layers = s.Layers
	if layers < 1 {
		layers = 1
	}
	if layers < std.MinLayers {
		layers = std.MinLayers
	}
	if s.Thickness.IsZero() {
		return std.MinThickness, layers, nil
	}
	thickness, err = s.Thickness.Resolve()
	if err != nil {
		return 0, 0, err
	}
	if thickness < std.MinThickness {
		thickness = std.MinThickness
	}
	return thickness, layers, nil
}
