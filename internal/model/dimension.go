package model

// Dimension represents a toleranced dimension in mm. Any of the three
// bounds may be absent; Resolve picks one working value.
type Dimension struct {
	Nominal *float64 `json:"nominal,omitempty" toml:"nominal"`
	Minimum *float64 `json:"minimum,omitempty" toml:"minimum"`
	Maximum *float64 `json:"maximum,omitempty" toml:"maximum"`
}

// Dim returns a Dimension with only a nominal value set.
func Dim(v float64) Dimension {
	return Dimension{Nominal: &v}
}

// DimRange returns a Dimension with minimum and maximum bounds.
func DimRange(min, max float64) Dimension {
	return Dimension{Minimum: &min, Maximum: &max}
}

// IsZero reports whether no bound is present at all.
func (d Dimension) IsZero() bool {
	return d.Nominal == nil && d.Minimum == nil && d.Maximum == nil
}

// Resolve reduces the dimension to a single working value: the nominal
// when present, otherwise the midpoint of min/max, otherwise whichever
// single bound exists. Returns ErrInvalidDimension when nothing is set.
func (d Dimension) Resolve() (float64, error) {
	switch {
	case d.Nominal != nil:
		return *d.Nominal, nil
	case d.Minimum != nil && d.Maximum != nil:
		return (*d.Minimum + *d.Maximum) / 2, nil
	case d.Minimum != nil:
		return *d.Minimum, nil
	case d.Maximum != nil:
		return *d.Maximum, nil
	default:
		return 0, ErrInvalidDimension
	}
}
