package sindex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvistat/sindex/internal/errors"
)

func TestSolveSiteIndexLinearForward(t *testing.T) {
	// Forward function with a known inverse: H = 1.3 + (S - 1.3) * 0.8.
	forward := func(siteIndex float64) (float64, error) {
		return BreastHeight + (siteIndex-BreastHeight)*0.8, nil
	}

	siteIndex, err := solveSiteIndex(forward, 17.3)
	require.NoError(t, err)
	assert.InDelta(t, BreastHeight+16.0/0.8, siteIndex, 0.001)
}

func TestSolveSiteIndexBelowBreastHeight(t *testing.T) {
	forward := func(siteIndex float64) (float64, error) {
		return BreastHeight + (siteIndex-BreastHeight)*0.8, nil
	}

	_, err := solveSiteIndex(forward, 1.3)
	assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall))
}

func TestSolveSiteIndexOutOfRange(t *testing.T) {
	forward := func(siteIndex float64) (float64, error) {
		return BreastHeight + (siteIndex-BreastHeight)*0.8, nil
	}

	// Taller than the forward function can produce at the maximum site index.
	_, err := solveSiteIndex(forward, 200.0)
	assert.True(t, errors.IsKind(err, errors.KindNoConvergence))
}

func TestSolveAge(t *testing.T) {
	// Saturating forward curve in age.
	forward := func(age float64) (float64, error) {
		return BreastHeight + 30*(1-math.Exp(-0.03*age)), nil
	}

	age, err := solveAge(forward, 20.0)
	require.NoError(t, err)

	check, err := forward(age)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, check, solverTolerance*10)

	// The asymptote is 31.3; no age reaches 40.
	_, err = solveAge(forward, 40.0)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))
}
