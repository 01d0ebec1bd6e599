package sindex

import (
	"github.com/silvistat/sindex/internal/errors"
)

type speciesPair struct {
	source int
	target int
}

// linearConversion is a published species-to-species site index regression,
// si' = intercept + slope*si, keyed by the ordered species pair.
type linearConversion struct {
	intercept float64
	slope     float64
}

// ConvertSiteIndex maps a site index measured under the source species'
// curves to the equivalent value under the target species'. Identical source
// and target return the input unchanged.
func (r *Registry) ConvertSiteIndex(sourceSpecies int, siteIndex float64, targetSpecies int) (float64, error) {
	src, err := r.Species(sourceSpecies)
	if err != nil {
		return 0, err
	}
	dst, err := r.Species(targetSpecies)
	if err != nil {
		return 0, err
	}
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if sourceSpecies == targetSpecies {
		return siteIndex, nil
	}
	conv, ok := r.conversions[speciesPair{source: sourceSpecies, target: targetSpecies}]
	if !ok {
		return 0, errors.Newf("no site index conversion is defined from %s to %s", src.Code, dst.Code).
			Kind(errors.KindNoConversion).
			Context("source_species", src.Code).
			Context("target_species", dst.Code).
			Build()
	}
	return conv.intercept + conv.slope*siteIndex, nil
}
