package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// ModelChapmanRichards is the anamorphic Chapman-Richards height-age family:
//
//	H = 1.3 + (S - 1.3) * ((1 - e^(-b1*A)) / (1 - e^(-b1*Aref)))^b2
//
// where A is age in the curve's native basis and Aref is the reference age
// the site index is expressed at. The family admits closed-form inverses for
// both site index and age.
const ModelChapmanRichards = "chapman-richards"

func init() {
	registerModel(ModelChapmanRichards, newChapmanRichards)
}

type chapmanRichards struct {
	curve  *Curve
	b1     float64
	b2     float64
	refAge float64
}

func newChapmanRichards(c *Curve) (Model, error) {
	coeffs, err := requireCoefficients(c, "b1", "b2", "ref_age")
	if err != nil {
		return nil, err
	}
	return &chapmanRichards{curve: c, b1: coeffs[0], b2: coeffs[1], refAge: coeffs[2]}, nil
}

func (m *chapmanRichards) Tag() string { return ModelChapmanRichards }

// shape evaluates ((1 - e^(-b1*A)) / (1 - e^(-b1*Aref)))^b2.
func (m *chapmanRichards) shape(age float64) float64 {
	num := 1 - math.Exp(-m.b1*age)
	den := 1 - math.Exp(-m.b1*m.refAge)
	return math.Pow(num/den, m.b2)
}

func (m *chapmanRichards) HeightAtAge(age, siteIndex float64) (float64, error) {
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

func (m *chapmanRichards) SiteIndexFromHeightAge(height, age float64, method EstimateMethod) (float64, error) {
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

func (m *chapmanRichards) AgeFromHeightSiteIndex(height, siteIndex float64) (float64, error) {
	if err := requireSiteIndex(siteIndex); err != nil {
		return 0, err
	}
	if height <= BreastHeight {
		return 0, nil
	}
	ratio := (height - BreastHeight) / (siteIndex - BreastHeight)
	inner := math.Pow(ratio, 1/m.b2) * (1 - math.Exp(-m.b1*m.refAge))
	if inner >= 1 {
		return 0, errors.Newf("height %.3f is above the curve's asymptote for site index %.2f", height, siteIndex).
			Kind(errors.KindNoAnswer).
			Context("height", height).
			Context("site_index", siteIndex).
			Build()
	}
	return -math.Log(1-inner) / m.b1, nil
}

func (m *chapmanRichards) YearsToBreastHeight(siteIndex float64) (float64, error) {
	return linearY2BH(m.curve, siteIndex)
}
