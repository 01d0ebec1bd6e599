package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// ModelSchumacher is the anamorphic Schumacher height-age family:
//
//	H = 1.3 + (S - 1.3) * e^(b1 * (A^-b2 - Aref^-b2))
//
// with b1 < 0 so height rises from breast height toward the site-index
// asymptote as age grows. Closed-form inverses exist for site index and age.
const ModelSchumacher = "schumacher"

func init() {
	registerModel(ModelSchumacher, newSchumacher)
}

type schumacher struct {
	curve  *Curve
	b1     float64
	b2     float64
	refAge float64
}

func newSchumacher(c *Curve) (Model, error) {
	coeffs, err := requireCoefficients(c, "b1", "b2", "ref_age")
	if err != nil {
		return nil, err
	}
	return &schumacher{curve: c, b1: coeffs[0], b2: coeffs[1], refAge: coeffs[2]}, nil
}

func (m *schumacher) Tag() string { return ModelSchumacher }

// shape evaluates e^(b1 * (A^-b2 - Aref^-b2)); it tends to 0 as A tends to 0
// and to e^(-b1*Aref^-b2) as A grows.
func (m *schumacher) shape(age float64) float64 {
	return math.Exp(m.b1 * (math.Pow(age, -m.b2) - math.Pow(m.refAge, -m.b2)))
}

func (m *schumacher) HeightAtAge(age, siteIndex float64) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if age == 0 {
		return BreastHeight, nil
	}
	return BreastHeight + (siteIndex-BreastHeight)*m.shape(age), nil
}

func (m *schumacher) SiteIndexFromHeightAge(height, age float64, method EstimateMethod) (float64, error) {
	if err := requireAge(age); err != nil {
		return 0, err
	}
	if method == EstimateIterate {
		return solveSiteIndex(func(si float64) (float64, error) {
			return m.HeightAtAge(age, si)
		}, height)
	}
	if age <= 0 {
		return 0, errors.Newf("site index is undefined at age %.3f", age).
			Kind(errors.KindNoAnswer).
			Context("age", age).
			Build()
	}
	siteIndex := BreastHeight + (height-BreastHeight)/m.shape(age)
	if siteIndex <= BreastHeight {
		return 0, errors.Newf("height %.3f at age %.1f implies a site index at or below breast height", height, age).
			Kind(errors.KindSiteIndexTooSmall).
			Context("height", height).
			Context("age", age).
			Build()
	}
	return siteIndex, nil
}

func (m *schumacher) AgeFromHeightSiteIndex(height, siteIndex float64) (float64, error) {
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if height <= BreastHeight {
		return 0, nil
	}
	ratio := (height - BreastHeight) / (siteIndex - BreastHeight)
	// ln(ratio) = b1 * (A^-b2 - Aref^-b2), solved for A.
	t := math.Log(ratio)/m.b1 + math.Pow(m.refAge, -m.b2)
	if t <= 0 {
		return 0, errors.Newf("height %.3f is above the curve's asymptote for site index %.2f", height, siteIndex).
			Kind(errors.KindNoAnswer).
			Context("height", height).
			Context("site_index", siteIndex).
			Build()
	}
	return math.Pow(t, -1/m.b2), nil
}

func (m *schumacher) YearsToBreastHeight(siteIndex float64) (float64, error) {
	return linearY2BH(m.curve, siteIndex)
}
