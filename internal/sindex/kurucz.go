package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// ModelKuruczPolynomial is a polymorphic polynomial height-age family in the
// style of the Kurucz coastal fits:
//
//	H = 1.3 + b1 * (S - 1.3)^b2 * (1 - e^(-b3*A))^(b4 + b5*ln(S - 1.3))
//
// The shape exponent depends on site index, so no closed-form site index
// inverse exists; site index estimation is iterate-only.
const ModelKuruczPolynomial = "kurucz-polynomial"

func init() {
	registerModel(ModelKuruczPolynomial, newKuruczPolynomial)
}

type kuruczPolynomial struct {
	curve *Curve
	b1    float64
	b2    float64
	b3    float64
	b4    float64
	b5    float64
}

func newKuruczPolynomial(c *Curve) (Model, error) {
	coeffs, err := requireCoefficients(c, "b1", "b2", "b3", "b4", "b5")
	if err != nil {
		return nil, err
	}
	return &kuruczPolynomial{
		curve: c,
		b1:    coeffs[0],
		b2:    coeffs[1],
		b3:    coeffs[2],
		b4:    coeffs[3],
		b5:    coeffs[4],
	}, nil
}

func (m *kuruczPolynomial) Tag() string { return ModelKuruczPolynomial }

// exponent is the site-dependent shape exponent b4 + b5*ln(S - 1.3).
func (m *kuruczPolynomial) exponent(siteIndex float64) float64 {
	return m.b4 + m.b5*math.Log(siteIndex-BreastHeight)
}

func (m *kuruczPolynomial) HeightAtAge(age, siteIndex float64) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if age == 0 {
		return BreastHeight, nil
	}
	scale := m.b1 * math.Pow(siteIndex-BreastHeight, m.b2)
	growth := math.Pow(1-math.Exp(-m.b3*age), m.exponent(siteIndex))
	return BreastHeight + scale*growth, nil
}

func (m *kuruczPolynomial) SiteIndexFromHeightAge(height, age float64, method EstimateMethod) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if method == EstimateDirect {
		return 0, errors.Newf("model %s has no closed-form site index inverse", m.Tag()).
			Kind(errors.KindNoDirectInverse).
			Context("curve_index", m.curve.Index).
			Build()
	}
	return solveSiteIndex(func(si float64) (float64, error) {
		return m.HeightAtAge(age, si)
	}, height)
}

func (m *kuruczPolynomial) AgeFromHeightSiteIndex(height, siteIndex float64) (float64, error) {
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if height <= BreastHeight {
		return 0, nil
	}
	scale := m.b1 * math.Pow(siteIndex-BreastHeight, m.b2)
	exp := m.exponent(siteIndex)
	if scale <= 0 || exp <= 0 {
		return 0, errors.Newf("curve %s is outside its fitted range at site index %.2f", m.curve.Key, siteIndex).
			Kind(errors.KindNoAnswer).
			Context("site_index", siteIndex).
			Build()
	}
	inner := math.Pow((height-BreastHeight)/scale, 1/exp)
	if inner >= 1 {
		return 0, errors.Newf("height %.3f is above the curve's asymptote for site index %.2f", height, siteIndex).
			Kind(errors.KindNoAnswer).
			Context("height", height).
			Context("site_index", siteIndex).
			Build()
	}
	return -math.Log(1-inner) / m.b3, nil
}

func (m *kuruczPolynomial) YearsToBreastHeight(siteIndex float64) (float64, error) {
	return linearY2BH(m.curve, siteIndex)
}
