package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// ModelGrowthIntercept is the growth intercept family for young stands. Site
// index is fitted to early height increment above breast height rather than
// to full-age height:
//
//	S = b1 + b2 * ((H - 1.3) / A)^b3
//
// with A a breast-height age inside the curve's fitted GI range. The fit is
// only meaningful between age 0.5 and the curve's GIRange.
const ModelGrowthIntercept = "growth-intercept"

// minGIAge is the youngest breast-height age the GI fits are defined for.
const minGIAge = 0.5

func init() {
	registerModel(ModelGrowthIntercept, newGrowthIntercept)
}

type growthIntercept struct {
	curve *Curve
	b1    float64
	b2    float64
	b3    float64
}

func newGrowthIntercept(c *Curve) (Model, error) {
	coeffs, err := requireCoefficients(c, "b1", "b2", "b3")
	if err != nil {
		return nil, err
	}
	return &growthIntercept{curve: c, b1: coeffs[0], b2: coeffs[1], b3: coeffs[2]}, nil
}

func (m *growthIntercept) Tag() string { return ModelGrowthIntercept }

func (m *growthIntercept) checkGIAge(age float64) error {
	if age < minGIAge {
		return errors.Newf("breast-height age %.2f is below the growth intercept minimum %.1f", age, minGIAge).
			Kind(errors.KindNoAnswer).
			Context("age", age).
			Build()
	}
	if m.curve.GIRange > 0 && age > m.curve.GIRange {
		return errors.Newf("breast-height age %.2f exceeds the growth intercept range %.0f of curve %s", age, m.curve.GIRange, m.curve.Key).
			Kind(errors.KindNoAnswer).
			Context("age", age).
			Context("gi_range", m.curve.GIRange).
			Build()
	}
	return nil
}

// increment is the annual height increment ((S - b1)/b2)^(1/b3) implied by a
// site index.
func (m *growthIntercept) increment(siteIndex float64) (float64, error) {
	if siteIndex <= m.b1 {
		return 0, errors.Newf("site index %.2f is below the fitted range of curve %s", siteIndex, m.curve.Key).
			Kind(errors.KindNoAnswer).
			Context("site_index", siteIndex).
			Build()
	}
	return math.Pow((siteIndex-m.b1)/m.b2, 1/m.b3), nil
}

func (m *growthIntercept) HeightAtAge(age, siteIndex float64) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if err := m.checkGIAge(age); err != nil {
		return 0, err
	}
	inc, err := m.increment(siteIndex)
	if err != nil {
		return 0, err
	}
	return BreastHeight + age*inc, nil
}

func (m *growthIntercept) SiteIndexFromHeightAge(height, age float64, method EstimateMethod) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if err := m.checkGIAge(age); err != nil {
		return 0, err
	}
	if height <= BreastHeight {
		return 0, errors.Newf("height %.3f at or below breast height implies a site index at or below breast height", height).
			Kind(errors.KindSiteIndexTooSmall).
			Context("height", height).
			Build()
	}
	// The GI fit is its own closed form; both estimate methods use it.
	_ = method
	siteIndex := m.b1 + m.b2*math.Pow((height-BreastHeight)/age, m.b3)
	if siteIndex <= BreastHeight {
		return 0, errors.Newf("height %.3f at age %.1f implies a site index at or below breast height", height, age).
			Kind(errors.KindSiteIndexTooSmall).
			Context("height", height).
			Context("age", age).
			Build()
	}
	return siteIndex, nil
}

func (m *growthIntercept) AgeFromHeightSiteIndex(height, siteIndex float64) (float64, error) {
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if height <= BreastHeight {
		return 0, nil
	}
	inc, err := m.increment(siteIndex)
	if err != nil {
		return 0, err
	}
	age := (height - BreastHeight) / inc
	if err := m.checkGIAge(age); err != nil {
		return 0, err
	}
	return age, nil
}

func (m *growthIntercept) YearsToBreastHeight(siteIndex float64) (float64, error) {
	return linearY2BH(m.curve, siteIndex)
}
