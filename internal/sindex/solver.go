package sindex

import (
	"math"

	"github.com/silvistat/sindex/internal/errors"
)

// Solver bounds. Every iterative inversion is capped so a pathological input
// fails with no-convergence instead of hanging the caller.
const (
	solverTolerance     = 1e-4 // height error, metres
	solverMaxIterations = 100

	minSolveSiteIndex = BreastHeight + 0.01
	maxSolveSiteIndex = 99.0
	maxSolveAge       = 999.0
)

// solveSiteIndex numerically inverts a forward height function over site
// index at a fixed age. forward must be monotone increasing in site index,
// which holds for every registered equation family.
func solveSiteIndex(forward func(siteIndex float64) (float64, error), height float64) (float64, error) {
	lo, hi := minSolveSiteIndex, maxSolveSiteIndex

	atLo, err := forward(lo)
	if err != nil {
		return 0, err
	}
	if atLo >= height {
		// Even the poorest representable site grows past the target height:
		// the implied site index sits at or below breast height.
		return 0, errors.Newf("implied site index is at or below breast height for height %.3f", height).
			Kind(errors.KindSiteIndexTooSmall).
			Context("height", height).
			Build()
	}

	atHi, err := forward(hi)
	if err != nil {
		return 0, err
	}
	if atHi < height {
		return 0, errors.Newf("height %.3f exceeds the curve's range at maximum site index", height).
			Kind(errors.KindNoConvergence).
			Context("height", height).
			Build()
	}

	for i := 0; i < solverMaxIterations; i++ {
		mid := (lo + hi) / 2
		atMid, err := forward(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(atMid-height) < solverTolerance {
			return mid, nil
		}
		if atMid < height {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, errors.Newf("site index search did not converge within %d iterations", solverMaxIterations).
		Kind(errors.KindNoConvergence).
		Context("height", height).
		Build()
}

// solveAge numerically inverts a forward height function over age at a fixed
// site index. Used by families without a closed-form age inverse.
func solveAge(forward func(age float64) (float64, error), height float64) (float64, error) {
	lo, hi := 0.0, maxSolveAge

	atLo, err := forward(lo)
	if err != nil {
		return 0, err
	}
	if atLo >= height {
		return 0, nil
	}

	atHi, err := forward(hi)
	if err != nil {
		return 0, err
	}
	if atHi < height {
		return 0, errors.Newf("height %.3f is never reached within the solvable age range", height).
			Kind(errors.KindNoAnswer).
			Context("height", height).
			Build()
	}

	for i := 0; i < solverMaxIterations; i++ {
		mid := (lo + hi) / 2
		atMid, err := forward(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(atMid-height) < solverTolerance {
			return mid, nil
		}
		if atMid < height {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, errors.Newf("age search did not converge within %d iterations", solverMaxIterations).
		Kind(errors.KindNoConvergence).
		Context("height", height).
		Build()
}
