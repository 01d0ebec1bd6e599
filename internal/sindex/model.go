package sindex

import (
	"github.com/silvistat/sindex/internal/errors"
)

// Model is one equation family. Implementations are pure functions of the
// coefficient set captured at construction: no shared mutable state, safe for
// concurrent evaluation.
//
// Ages are expressed in the owning curve's native basis (AgeDomain); the
// estimation engine reconciles caller-supplied age types before delegating.
type Model interface {
	// Tag returns the model tag the implementation is registered under.
	Tag() string

	// HeightAtAge evaluates the forward height-age equation for the given
	// site index. Non-decreasing in age for a fixed site index.
	HeightAtAge(age, siteIndex float64) (float64, error)

	// SiteIndexFromHeightAge recovers site index from a height and age pair,
	// either by the family's closed-form inverse (EstimateDirect) or by
	// numeric inversion of HeightAtAge (EstimateIterate).
	SiteIndexFromHeightAge(height, age float64, method EstimateMethod) (float64, error)

	// AgeFromHeightSiteIndex inverts HeightAtAge over age.
	AgeFromHeightSiteIndex(height, siteIndex float64) (float64, error)

	// YearsToBreastHeight returns the modeled years from establishment to
	// breast height for the given site index.
	YearsToBreastHeight(siteIndex float64) (float64, error)
}

// modelFactory builds a Model from a curve's coefficient set.
type modelFactory func(c *Curve) (Model, error)

var modelFactories = map[string]modelFactory{}

// registerModel installs a factory for a model tag. Called from init in each
// family file, so new families never touch dispatch code.
func registerModel(tag string, factory modelFactory) {
	modelFactories[tag] = factory
}

// newModel resolves a curve's model tag to a constructed Model.
func newModel(c *Curve) (Model, error) {
	factory, ok := modelFactories[c.ModelTag]
	if !ok {
		return nil, errors.Newf("curve %s references unregistered model tag %q", c.Key, c.ModelTag).
			Context("curve_index", c.Index).
			Context("model_tag", c.ModelTag).
			Build()
	}
	return factory(c)
}

// requireCoefficients extracts named coefficients from a curve, failing when
// any is missing from the table entry.
func requireCoefficients(c *Curve, names ...string) ([]float64, error) {
	values := make([]float64, len(names))
	for i, name := range names {
		v, ok := c.Coefficient(name)
		if !ok {
			return nil, errors.Newf("curve %s is missing coefficient %q", c.Key, name).
				Context("curve_index", c.Index).
				Context("coefficient", name).
				Build()
		}
		values[i] = v
	}
	return values, nil
}

// requireSiteIndex rejects site index values at or below breast height.
func requireSiteIndex(siteIndex float64) error {
	if siteIndex <= BreastHeight {
		return errors.Newf("site index %.3f is at or below breast height %.1f", siteIndex, BreastHeight).
			Kind(errors.KindSiteIndexTooSmall).
			Context("site_index", siteIndex).
			Build()
	}
	return nil
}

// requireAge rejects negative ages; the forward equations are undefined there.
func requireAge(age float64) error {
	if age < 0 {
		return errors.Newf("age %.3f is negative", age).
			Kind(errors.KindNoAnswer).
			Context("age", age).
			Build()
	}
	return nil
}

// linearY2BH is the shared years-to-breast-height fit used by every family:
// y2bh = a + b/(si - 1.3), with coefficients y2bh_a and y2bh_b from the
// curve's table entry.
func linearY2BH(c *Curve, siteIndex float64) (float64, error) {
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	coeffs, err := requireCoefficients(c, "y2bh_a", "y2bh_b")
	if err != nil {
		return 0, errors.Newf("curve %s has no years-to-breast-height fit", c.Key).
			Kind(errors.KindNoAnswer).
			Context("curve_index", c.Index).
			Build()
	}
	years := coeffs[0] + coeffs[1]/(siteIndex-BreastHeight)
	if years <= 0 {
		return 0, errors.Newf("years-to-breast-height fit for curve %s is undefined at site index %.2f", c.Key, siteIndex).
			Kind(errors.KindNoAnswer).
			Context("site_index", siteIndex).
			Build()
	}
	return years, nil
}
