package sindex

import (
	"github.com/silvistat/sindex/internal/errors"
)

type siteClassKey struct {
	species int
	class   SiteClass
	fiz     FizZone
}

// SiteIndexFromSiteClass returns the representative site index for a
// qualitative site class in the given forest inventory zone. The mapping is a
// static table lookup, independent of any curve model.
func (r *Registry) SiteIndexFromSiteClass(speciesIdx int, class SiteClass, fiz FizZone) (float64, error) {
	if !class.Valid() {
		return 0, errors.Newf("site class %d is not a member of the enumeration", int(class)).
			Kind(errors.KindUnknownSiteClass).
			Build()
	}
	if !fiz.Valid() {
		return 0, errors.Newf("FIZ zone %d is not a member of the enumeration", int(fiz)).
			Kind(errors.KindUnknownFizZone).
			Build()
	}
	sp, err := r.Species(speciesIdx)
	if err != nil {
		return 0, err
	}
	siteIndex, ok := r.siteClasses[siteClassKey{species: speciesIdx, class: class, fiz: fiz}]
	if !ok {
		return 0, errors.Newf("species %s has no site index for class %s in the %s zone", sp.Code, class, fiz).
			Kind(errors.KindNoAnswer).
			Context("species_index", speciesIdx).
			Context("site_class", class.String()).
			Context("fiz_zone", fiz.String()).
			Build()
	}
	return siteIndex, nil
}
