package sindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvistat/sindex/internal/errors"
)

func TestParseAgeType(t *testing.T) {
	at, err := ParseAgeType("total")
	require.NoError(t, err)
	assert.Equal(t, AgeTotal, at)

	at, err = ParseAgeType(" BH ")
	require.NoError(t, err)
	assert.Equal(t, AgeBreastHeight, at)

	_, err = ParseAgeType("stump")
	assert.True(t, errors.IsKind(err, errors.KindUnknownAgeType))
}

func TestParseSiteClass(t *testing.T) {
	for name, want := range map[string]SiteClass{
		"none":   ClassNone,
		"low":    ClassLow,
		"poor":   ClassPoor,
		"medium": ClassMedium,
		"good":   ClassGood,
	} {
		got, err := ParseSiteClass(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseSiteClass("excellent")
	assert.True(t, errors.IsKind(err, errors.KindUnknownSiteClass))
}

func TestParseFizZone(t *testing.T) {
	zone, err := ParseFizZone("coastal")
	require.NoError(t, err)
	assert.Equal(t, FizCoast, zone)

	_, err = ParseFizZone("alpine")
	assert.True(t, errors.IsKind(err, errors.KindUnknownFizZone))
}

func TestParseRegenerationType(t *testing.T) {
	regen, err := ParseRegenerationType("planted")
	require.NoError(t, err)
	assert.Equal(t, RegenPlanted, regen)

	_, err = ParseRegenerationType("coppice")
	assert.True(t, errors.IsKind(err, errors.KindInvalidEstabType))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "total", AgeTotal.String())
	assert.Equal(t, "breast-height", AgeBreastHeight.String())
	assert.Equal(t, "iterate", EstimateIterate.String())
	assert.Equal(t, "direct", EstimateDirect.String())
	assert.Equal(t, "coast", FizCoast.String())
	assert.Equal(t, "interior", FizInterior.String())

	assert.False(t, AgeType(9).Valid())
	assert.False(t, SiteClass(-1).Valid())
}
