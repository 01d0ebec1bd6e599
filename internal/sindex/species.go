package sindex

import (
	"github.com/silvistat/sindex/internal/errors"
)

// Species is one entry of the species table. Instances are immutable after
// the table is loaded.
type Species struct {
	Index          int
	Code           string // short fixed-width code, stored trimmed
	Name           string
	DefaultCurve   int // curve index, -1 when the species has none
	DefaultGICurve int // curve index, -1 when the species has none
	defaultByRegen map[RegenerationType]int
	curves         []int // owned curve indices in registration order
}

// Curves returns the indices of the curves owned by the species, in
// registration order.
func (s *Species) Curves() []int {
	out := make([]int, len(s.curves))
	copy(out, s.curves)
	return out
}

func unknownSpecies(idx int) error {
	return errors.Newf("species index %d is not in the loaded table", idx).
		Kind(errors.KindUnknownSpecies).
		Context("species_index", idx).
		Build()
}

// Species returns the species record for idx.
func (r *Registry) Species(idx int) (*Species, error) {
	if idx < 0 || idx >= len(r.species) {
		return nil, unknownSpecies(idx)
	}
	return &r.species[idx], nil
}

// FirstSpecies returns the index of the first species in table order, or
// ErrEndOfSequence if the table is empty.
func (r *Registry) FirstSpecies() (int, error) {
	if len(r.species) == 0 {
		return 0, errors.ErrEndOfSequence
	}
	return 0, nil
}

// NextSpecies returns the species index following idx in table order.
// Traversal past the last species returns ErrEndOfSequence, which is a
// terminator rather than a failure.
func (r *Registry) NextSpecies(idx int) (int, error) {
	if idx < 0 || idx >= len(r.species) {
		return 0, unknownSpecies(idx)
	}
	if idx+1 == len(r.species) {
		return 0, errors.ErrEndOfSequence
	}
	return idx + 1, nil
}

// SpeciesCode returns the short code of the species at idx.
func (r *Registry) SpeciesCode(idx int) (string, error) {
	sp, err := r.Species(idx)
	if err != nil {
		return "", err
	}
	return sp.Code, nil
}

// SpeciesName returns the display name of the species at idx.
func (r *Registry) SpeciesName(idx int) (string, error) {
	sp, err := r.Species(idx)
	if err != nil {
		return "", err
	}
	return sp.Name, nil
}

// DefaultCurve returns the species' default curve index.
func (r *Registry) DefaultCurve(idx int) (int, error) {
	sp, err := r.Species(idx)
	if err != nil {
		return 0, err
	}
	if sp.DefaultCurve < 0 {
		return 0, errors.Newf("species %s has no default curve", sp.Code).
			Kind(errors.KindNoAnswer).
			Context("species_index", idx).
			Build()
	}
	return sp.DefaultCurve, nil
}

// DefaultCurveForRegen returns the species' default curve for the given
// establishment type, falling back to the species default when no
// establishment-specific curve is registered.
func (r *Registry) DefaultCurveForRegen(idx int, regen RegenerationType) (int, error) {
	sp, err := r.Species(idx)
	if err != nil {
		return 0, err
	}
	if !regen.Valid() {
		return 0, errors.Newf("establishment type %d is not valid", int(regen)).
			Kind(errors.KindInvalidEstabType).
			Context("species_index", idx).
			Build()
	}
	if curve, ok := sp.defaultByRegen[regen]; ok {
		return curve, nil
	}
	return r.DefaultCurve(idx)
}

// DefaultGICurve returns the species' default growth intercept curve.
func (r *Registry) DefaultGICurve(idx int) (int, error) {
	sp, err := r.Species(idx)
	if err != nil {
		return 0, err
	}
	if sp.DefaultGICurve < 0 {
		return 0, errors.Newf("species %s has no growth intercept curve", sp.Code).
			Kind(errors.KindNoAnswer).
			Context("species_index", idx).
			Build()
	}
	return sp.DefaultGICurve, nil
}
