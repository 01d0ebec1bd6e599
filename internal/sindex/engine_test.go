package sindex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvistat/sindex/internal/errors"
)

func loadTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := Open("")
	require.NoError(t, err)
	return engine
}

func TestEngineResolutionShortCircuits(t *testing.T) {
	engine := loadTestEngine(t)

	_, err := engine.SiteIndexFromHeightAge(999, 10, 50, AgeTotal, EstimateDirect)
	assert.True(t, errors.IsKind(err, errors.KindUnknownSpecies))

	_, err = engine.AgeFromHeightSiteIndex(999, 10, 20, AgeTotal)
	assert.True(t, errors.IsKind(err, errors.KindUnknownCurve))

	_, err = engine.YearsToBreastHeight(-1, 20)
	assert.True(t, errors.IsKind(err, errors.KindUnknownCurve))

	_, err = engine.SiteIndexFromHeightAge(1, 10, 50, AgeType(7), EstimateDirect)
	assert.True(t, errors.IsKind(err, errors.KindUnknownAgeType))
}

// TestDefaultConiferScenario follows a field workflow end to end: site index
// from a height/age measurement, years to breast height from that estimate,
// and the measured height reproduced from both.
func TestDefaultConiferScenario(t *testing.T) {
	engine := loadTestEngine(t)
	registry := engine.Registry()

	const speciesIdx = 1 // Ba
	siteIndex, err := engine.SiteIndexFromHeightAge(speciesIdx, 10.0, 50.0, AgeTotal, EstimateDirect)
	require.NoError(t, err)
	assert.Greater(t, siteIndex, BreastHeight)
	assert.Less(t, siteIndex, 60.0)

	curveIdx, err := registry.DefaultCurve(speciesIdx)
	require.NoError(t, err)

	y2bh, err := engine.YearsToBreastHeight(curveIdx, siteIndex)
	require.NoError(t, err)
	assert.Positive(t, y2bh)

	height, err := engine.HeightFromAgeSiteIndex(curveIdx, siteIndex, 50.0, y2bh, AgeTotal)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, height, 0.05)
}

func TestSiteIndexIterateWithAgeConversion(t *testing.T) {
	engine := loadTestEngine(t)

	direct, err := engine.SiteIndexFromHeightAge(1, 12.0, 60.0, AgeTotal, EstimateDirect)
	require.NoError(t, err)

	iterated, err := engine.SiteIndexFromHeightAge(1, 12.0, 60.0, AgeTotal, EstimateIterate)
	require.NoError(t, err)

	assert.InDelta(t, direct, iterated, 0.02, "both estimate methods must agree through the age conversion")
}

func TestAgeConversionRoundTrip(t *testing.T) {
	engine := loadTestEngine(t)
	registry := engine.Registry()

	curveIdx, err := registry.DefaultCurve(9) // Sw, breast-height domain
	require.NoError(t, err)

	const siteIndex = 18.0
	height, err := engine.HeightFromAgeSiteIndex(curveIdx, siteIndex, 70.0, 0, AgeTotal)
	require.NoError(t, err)

	age, err := engine.AgeFromHeightSiteIndex(curveIdx, height, siteIndex, AgeTotal)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, age, 0.05)

	// The same stand expressed in breast-height age is younger by the
	// curve's years to breast height.
	bhAge, err := engine.AgeFromHeightSiteIndex(curveIdx, height, siteIndex, AgeBreastHeight)
	require.NoError(t, err)
	y2bh, err := engine.YearsToBreastHeight(curveIdx, siteIndex)
	require.NoError(t, err)
	assert.InDelta(t, age-y2bh, bhAge, 0.05)
}

func TestTotalAgeDomainCurve(t *testing.T) {
	engine := loadTestEngine(t)
	registry := engine.Registry()

	curveIdx, err := registry.DefaultCurve(3) // Dr, total-age domain
	require.NoError(t, err)

	const siteIndex = 22.0
	height, err := engine.HeightFromAgeSiteIndex(curveIdx, siteIndex, 25.0, 0, AgeTotal)
	require.NoError(t, err)
	assert.Greater(t, height, BreastHeight)

	age, err := engine.AgeFromHeightSiteIndex(curveIdx, height, siteIndex, AgeTotal)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, age, 0.05)
}

func TestYearsToBreastHeightPropagatesSiteIndexTooSmall(t *testing.T) {
	engine := loadTestEngine(t)

	for _, siteIndex := range []float64{1.3, 0.5, -2.0} {
		_, err := engine.YearsToBreastHeight(1, siteIndex)
		assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall), "site index %.1f", siteIndex)
	}
}

func TestConvertSiteIndex(t *testing.T) {
	engine := loadTestEngine(t)

	// Identity when source and target match.
	same, err := engine.ConvertSiteIndex(9, 20.0, 9)
	require.NoError(t, err)
	assert.Equal(t, 20.0, same)

	// Sw -> Pl via the conversion table.
	converted, err := engine.ConvertSiteIndex(9, 20.0, 6)
	require.NoError(t, err)
	assert.InDelta(t, 1.97+0.925*20.0, converted, 1e-9)

	// No entry for the ordered pair.
	_, err = engine.ConvertSiteIndex(1, 20.0, 2)
	assert.True(t, errors.IsKind(err, errors.KindNoConversion))

	_, err = engine.ConvertSiteIndex(99, 20.0, 1)
	assert.True(t, errors.IsKind(err, errors.KindUnknownSpecies))

	_, err = engine.ConvertSiteIndex(9, 1.3, 6)
	assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall))
}

func TestSiteIndexFromSiteClass(t *testing.T) {
	engine := loadTestEngine(t)

	siteIndex, err := engine.SiteIndexFromSiteClass(4, ClassMedium, FizCoast)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, siteIndex, 1e-9)

	// Registered species, no entry for the class/zone pair.
	_, err = engine.SiteIndexFromSiteClass(2, ClassMedium, FizCoast)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))

	_, err = engine.SiteIndexFromSiteClass(4, SiteClass(42), FizCoast)
	assert.True(t, errors.IsKind(err, errors.KindUnknownSiteClass))

	_, err = engine.SiteIndexFromSiteClass(4, ClassMedium, FizZone(42))
	assert.True(t, errors.IsKind(err, errors.KindUnknownFizZone))

	_, err = engine.SiteIndexFromSiteClass(200, ClassMedium, FizCoast)
	assert.True(t, errors.IsKind(err, errors.KindUnknownSpecies))
}

// TestConcurrentEvaluation exercises the lock-free read path: one engine,
// many goroutines, no shared mutable state.
func TestConcurrentEvaluation(t *testing.T) {
	engine := loadTestEngine(t)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				siteIndex, err := engine.SiteIndexFromHeightAge(1, 10.0, 50.0, AgeTotal, EstimateIterate)
				assert.NoError(t, err)
				assert.Greater(t, siteIndex, BreastHeight)
			}
		}()
	}
	wg.Wait()
}
