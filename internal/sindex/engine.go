package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// Engine resolves estimation requests against the registry and dispatches to
// the matching curve model. Models are constructed once per curve at engine
// build time; evaluation itself is stateless, so a single Engine serves any
// number of concurrent callers.
type Engine struct {
	registry *Registry
	models   []Model // indexed by curve index
}

// NewEngine builds an Engine over a loaded registry, constructing the model
// for every curve up front so dispatch never allocates or locks.
func NewEngine(r *Registry) (*Engine, error) {
	models := make([]Model, len(r.curves))
	for i := range r.curves {
		m, err := newModel(&r.curves[i])
		if err != nil {
			return nil, err
		}
		models[i] = m
	}
	return &Engine{registry: r, models: models}, nil
}

// Open loads the coefficient tables and builds an engine over them in one
// step. An empty tablePath uses the embedded table.
func Open(tablePath string) (*Engine, error) {
	registry, err := LoadTables(tablePath)
	if err != nil {
		return nil, err
	}
	return NewEngine(registry)
}

// Registry returns the table registry the engine dispatches against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) resolveCurve(curveIdx int) (*Curve, Model, error) {
	cv, err := e.registry.Curve(curveIdx)
	if err != nil {
		return nil, nil, err
	}
	return cv, e.models[curveIdx], nil
}

func validateAgeType(ageType AgeType) error {
	if !ageType.Valid() {
		return errors.Newf("age type %d is not a member of the enumeration", int(ageType)).
			Kind(errors.KindUnknownAgeType).
			Build()
	}
	return nil
}

// toNativeAge converts a caller-supplied age into the curve's native basis
// using the curve's years to breast height. A total age younger than y2bh
// clamps to breast-height age zero.
func toNativeAge(age float64, from, native AgeType, y2bh float64) float64 {
	switch {
	case from == native:
		return age
	case from == AgeTotal && native == AgeBreastHeight:
		return math.Max(age-y2bh, 0)
	default: // breast-height supplied, total wanted
		return age + y2bh
	}
}

// SiteIndexFromHeightAge estimates site index from a height and age pair
// using the species' default curve. When the supplied age basis differs from
// the curve's native basis the conversion itself depends on the unknown site
// index, so the estimate is found by fixed-point (DIRECT) or bracketed search
// over the converted forward function (ITERATE).
func (e *Engine) SiteIndexFromHeightAge(speciesIdx int, height, age float64, ageType AgeType, method EstimateMethod) (float64, error) {
	if err := validateAgeType(ageType); err != nil {
		return 0, err
	}
	if !method.Valid() {
		return 0, errors.Newf("estimate method %d is not a member of the enumeration", int(method)).Build()
	}
	curveIdx, err := e.registry.DefaultCurve(speciesIdx)
	if err != nil {
		return 0, err
	}
	cv, model, err := e.resolveCurve(curveIdx)
	if err != nil {
		return 0, err
	}

	if ageType == cv.AgeDomain {
		return model.SiteIndexFromHeightAge(height, age, method)
	}

	if method == EstimateIterate {
		return solveSiteIndex(func(si float64) (float64, error) {
			y2bh, err := model.YearsToBreastHeight(si)
			if err != nil {
				return 0, err
			}
			return model.HeightAtAge(toNativeAge(age, ageType, cv.AgeDomain, y2bh), si)
		}, height)
	}

	// DIRECT with an age basis mismatch: the closed-form inverse needs the
	// native age, which needs y2bh, which needs the answer. Iterate the
	// inverse to a fixed point.
	siteIndex, err := model.SiteIndexFromHeightAge(height, age, method)
	if err != nil {
		return 0, err
	}
	for i := 0; i < solverMaxIterations; i++ {
		y2bh, err := model.YearsToBreastHeight(siteIndex)
		if err != nil {
			return 0, err
		}
		next, err := model.SiteIndexFromHeightAge(height, toNativeAge(age, ageType, cv.AgeDomain, y2bh), method)
		if err != nil {
			return 0, err
		}
		if math.Abs(next-siteIndex) < solverTolerance {
			return next, nil
		}
		siteIndex = next
	}
	return 0, errors.Newf("site index estimate did not reach a fixed point within %d iterations", solverMaxIterations).
		Kind(errors.KindNoConvergence).
		Context("height", height).
		Context("age", age).
		Build()
}

// AgeFromHeightSiteIndex estimates stand age from a height and site index,
// expressed in the requested age basis.
func (e *Engine) AgeFromHeightSiteIndex(curveIdx int, height, siteIndex float64, ageType AgeType) (float64, error) {
	if err := validateAgeType(ageType); err != nil {
		return 0, err
	}
	cv, model, err := e.resolveCurve(curveIdx)
	if err != nil {
		return 0, err
	}
	nativeAge, err := model.AgeFromHeightSiteIndex(height, siteIndex)
	if err != nil {
		return 0, err
	}
	if ageType == cv.AgeDomain {
		return nativeAge, nil
	}
	y2bh, err := model.YearsToBreastHeight(siteIndex)
	if err != nil {
		return 0, err
	}
	if cv.AgeDomain == AgeBreastHeight {
		return nativeAge + y2bh, nil
	}
	return math.Max(nativeAge-y2bh, 0), nil
}

// HeightFromAgeSiteIndex evaluates the forward height-age curve. A
// non-positive y2bh is recomputed from the curve's own fit when the age basis
// needs conversion.
func (e *Engine) HeightFromAgeSiteIndex(curveIdx int, siteIndex, age, y2bh float64, ageType AgeType) (float64, error) {
	if err := validateAgeType(ageType); err != nil {
		return 0, err
	}
	cv, model, err := e.resolveCurve(curveIdx)
	if err != nil {
		return 0, err
	}
	if ageType != cv.AgeDomain && y2bh <= 0 {
		y2bh, err = model.YearsToBreastHeight(siteIndex)
		if err != nil {
			return 0, err
		}
	}
	return model.HeightAtAge(toNativeAge(age, ageType, cv.AgeDomain, y2bh), siteIndex)
}

// YearsToBreastHeight returns the curve's modeled years from establishment
// to breast height for the given site index.
func (e *Engine) YearsToBreastHeight(curveIdx int, siteIndex float64) (float64, error) {
	_, model, err := e.resolveCurve(curveIdx)
	if err != nil {
		return 0, err
	}
	return model.YearsToBreastHeight(siteIndex)
}

// ConvertSiteIndex maps a site index computed under one species' curves to
// the equivalent value under another species'.
func (e *Engine) ConvertSiteIndex(sourceSpecies int, siteIndex float64, targetSpecies int) (float64, error) {
	return e.registry.ConvertSiteIndex(sourceSpecies, siteIndex, targetSpecies)
}

// SiteIndexFromSiteClass maps a qualitative site class to a representative
// site index for the species and zone.
func (e *Engine) SiteIndexFromSiteClass(speciesIdx int, class SiteClass, fiz FizZone) (float64, error) {
	return e.registry.SiteIndexFromSiteClass(speciesIdx, class, fiz)
}
