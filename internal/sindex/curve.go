package sindex

import (
	"github.com/silvistat/sindex/internal/errors"
)

// Coefficient is one named parameter of a curve. The coefficient set keeps
// the table's declaration order.
type Coefficient struct {
	Name  string
	Value float64
}

// Curve is one entry of the curve table: a coefficient-parameterized instance
// of one equation family, tied to one species. Instances are immutable after
// the table is loaded.
type Curve struct {
	Index        int
	SpeciesIndex int
	Key          string // stable table key, used for cross-references
	Name         string
	Source       string
	Notes        string
	ModelTag     string
	Coefficients []Coefficient
	AgeDomain    AgeType // age basis the equations are fitted in
	MaxAge       float64 // upper bound of the fitted age range, 0 = unbounded
	GIRange      float64 // growth intercept curves: max usable breast-height age
}

// Coefficient returns the named coefficient value.
func (c *Curve) Coefficient(name string) (float64, bool) {
	for i := range c.Coefficients {
		if c.Coefficients[i].Name == name {
			return c.Coefficients[i].Value, true
		}
	}
	return 0, false
}

func unknownCurve(idx int) error {
	return errors.Newf("curve index %d is not in the loaded table", idx).
		Kind(errors.KindUnknownCurve).
		Context("curve_index", idx).
		Build()
}

// Curve returns the curve record for idx.
func (r *Registry) Curve(idx int) (*Curve, error) {
	if idx < 0 || idx >= len(r.curves) {
		return nil, unknownCurve(idx)
	}
	return &r.curves[idx], nil
}

// FirstCurve returns the first curve index registered for the species, or
// ErrEndOfSequence when the species owns no curves.
func (r *Registry) FirstCurve(speciesIdx int) (int, error) {
	sp, err := r.Species(speciesIdx)
	if err != nil {
		return 0, err
	}
	if len(sp.curves) == 0 {
		return 0, errors.ErrEndOfSequence
	}
	return sp.curves[0], nil
}

// NextCurve returns the curve index following curveIdx among the curves owned
// by the species, in registration order. Traversal past the species' last
// curve returns ErrEndOfSequence; a curve the species does not own is an
// error, keeping the two outcomes distinguishable.
func (r *Registry) NextCurve(speciesIdx, curveIdx int) (int, error) {
	sp, err := r.Species(speciesIdx)
	if err != nil {
		return 0, err
	}
	for i, owned := range sp.curves {
		if owned != curveIdx {
			continue
		}
		if i+1 == len(sp.curves) {
			return 0, errors.ErrEndOfSequence
		}
		return sp.curves[i+1], nil
	}
	return 0, errors.Newf("curve %d is not registered for species %s", curveIdx, sp.Code).
		Kind(errors.KindUnknownCurve).
		Context("species_index", speciesIdx).
		Context("curve_index", curveIdx).
		Build()
}

// CurveName returns the human-readable name of the curve at idx.
func (r *Registry) CurveName(idx int) (string, error) {
	cv, err := r.Curve(idx)
	if err != nil {
		return "", err
	}
	return cv.Name, nil
}

// CurveSource returns the source citation of the curve at idx.
func (r *Registry) CurveSource(idx int) (string, error) {
	cv, err := r.Curve(idx)
	if err != nil {
		return "", err
	}
	return cv.Source, nil
}

// CurveNotes returns the free-text notes of the curve at idx.
func (r *Registry) CurveNotes(idx int) (string, error) {
	cv, err := r.Curve(idx)
	if err != nil {
		return "", err
	}
	return cv.Notes, nil
}
