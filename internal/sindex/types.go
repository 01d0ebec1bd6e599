// Package sindex estimates forest-stand growth metrics from species-specific
// height-age curves: site index from height and age, height from age and site
// index, age from height and site index, and years to breast height.
//
// All registries are built once from the embedded coefficient table and are
// read-only afterwards, so every operation is safe for unlimited concurrent
// callers.
package sindex

import (
	"fmt"
	"strings"

	"github.com/silvistat/sindex/internal/errors"
)

// BreastHeight is the reference stem height, in metres, used as the origin
// for breast-height age. Site index values at or below it are invalid.
const BreastHeight = 1.3

// AgeType selects the age basis of a measurement: total age from seed, or
// age counted from breast-height establishment.
type AgeType int

const (
	AgeTotal AgeType = iota
	AgeBreastHeight
)

// String returns the lowercase name of the age type.
func (a AgeType) String() string {
	switch a {
	case AgeTotal:
		return "total"
	case AgeBreastHeight:
		return "breast-height"
	default:
		return fmt.Sprintf("age-type(%d)", int(a))
	}
}

// Valid reports whether the value is a member of the enumeration.
func (a AgeType) Valid() bool {
	return a == AgeTotal || a == AgeBreastHeight
}

// ParseAgeType converts a textual age type to its enumeration value.
func ParseAgeType(s string) (AgeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total":
		return AgeTotal, nil
	case "breast-height", "breast", "bh":
		return AgeBreastHeight, nil
	default:
		return 0, errors.Newf("unknown age type %q", s).
			Kind(errors.KindUnknownAgeType).Build()
	}
}

// EstimateMethod selects how site index is recovered from a height and age
// pair: a closed-form inverse where the model defines one, or numeric
// inversion of the forward height function.
type EstimateMethod int

const (
	EstimateIterate EstimateMethod = iota
	EstimateDirect
)

func (m EstimateMethod) String() string {
	switch m {
	case EstimateIterate:
		return "iterate"
	case EstimateDirect:
		return "direct"
	default:
		return fmt.Sprintf("estimate-method(%d)", int(m))
	}
}

// Valid reports whether the value is a member of the enumeration.
func (m EstimateMethod) Valid() bool {
	return m == EstimateIterate || m == EstimateDirect
}

// ParseEstimateMethod converts a textual method name to its enumeration value.
func ParseEstimateMethod(s string) (EstimateMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iterate":
		return EstimateIterate, nil
	case "direct":
		return EstimateDirect, nil
	default:
		return 0, errors.Newf("unknown estimate method %q", s).Build()
	}
}

// RegenerationType selects which default curve a species reports for a stand
// establishment type.
type RegenerationType int

const (
	RegenNatural RegenerationType = iota
	RegenPlanted
)

func (r RegenerationType) String() string {
	switch r {
	case RegenNatural:
		return "natural"
	case RegenPlanted:
		return "planted"
	default:
		return fmt.Sprintf("regeneration-type(%d)", int(r))
	}
}

// Valid reports whether the value is a member of the enumeration.
func (r RegenerationType) Valid() bool {
	return r == RegenNatural || r == RegenPlanted
}

// ParseRegenerationType converts a textual establishment type to its
// enumeration value.
func ParseRegenerationType(s string) (RegenerationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "natural":
		return RegenNatural, nil
	case "planted":
		return RegenPlanted, nil
	default:
		return 0, errors.Newf("unknown establishment type %q", s).
			Kind(errors.KindInvalidEstabType).Build()
	}
}

// SiteClass is the qualitative, ordinal site productivity class used by the
// site-class to site-index conversion.
type SiteClass int

const (
	ClassNone SiteClass = iota
	ClassLow
	ClassPoor
	ClassMedium
	ClassGood
)

func (c SiteClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassLow:
		return "low"
	case ClassPoor:
		return "poor"
	case ClassMedium:
		return "medium"
	case ClassGood:
		return "good"
	default:
		return fmt.Sprintf("site-class(%d)", int(c))
	}
}

// Valid reports whether the value is a member of the enumeration.
func (c SiteClass) Valid() bool {
	return c >= ClassNone && c <= ClassGood
}

// ParseSiteClass converts a textual site class to its enumeration value.
func ParseSiteClass(s string) (SiteClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ClassNone, nil
	case "low":
		return ClassLow, nil
	case "poor":
		return ClassPoor, nil
	case "medium":
		return ClassMedium, nil
	case "good":
		return ClassGood, nil
	default:
		return 0, errors.Newf("unknown site class %q", s).
			Kind(errors.KindUnknownSiteClass).Build()
	}
}

// FizZone is the coastal/interior forest inventory zone classification. Some
// curve tables key coefficient selection and site-class conversions on it.
type FizZone int

const (
	FizCoast FizZone = iota
	FizInterior
)

func (z FizZone) String() string {
	switch z {
	case FizCoast:
		return "coast"
	case FizInterior:
		return "interior"
	default:
		return fmt.Sprintf("fiz-zone(%d)", int(z))
	}
}

// Valid reports whether the value is a member of the enumeration.
func (z FizZone) Valid() bool {
	return z == FizCoast || z == FizInterior
}

// ParseFizZone converts a textual zone name to its enumeration value.
func ParseFizZone(s string) (FizZone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coast", "coastal", "c":
		return FizCoast, nil
	case "interior", "i":
		return FizInterior, nil
	default:
		return 0, errors.Newf("unknown FIZ zone %q", s).
			Kind(errors.KindUnknownFizZone).Build()
	}
}
