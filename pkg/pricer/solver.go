package pricer

import (
	"math"

	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

const (
	defaultTolerance     = 1e-10
	defaultMaxIterations = 100
	bracketGrowth        = 1.6
	bracketAttempts      = 40
)

// Solver finds roots of one dimensional objective functions by bracketing
// and bisection with secant acceleration.
type Solver struct {
	// Tolerance is the accepted residual around zero
	Tolerance float64
	// MaxIterations bounds the refinement steps after bracketing
	MaxIterations int
}

// NewSolver returns a solver with default tolerance and iteration bounds
func NewSolver() Solver {
	return Solver{Tolerance: defaultTolerance, MaxIterations: defaultMaxIterations}
}

func (s Solver) tolerance() float64 {
	if s.Tolerance <= 0 {
		return defaultTolerance
	}
	return s.Tolerance
}

func (s Solver) maxIterations() int {
	if s.MaxIterations <= 0 {
		return defaultMaxIterations
	}
	return s.MaxIterations
}

// Root returns x in an expansion of [lo, hi] with f(x) close to zero
func (s Solver) Root(f func(float64) (float64, error), lo, hi float64) (float64, error) {
	if hi <= lo {
		return 0, errors.Domainf("root search requires lo < hi, got [%g, %g]", lo, hi)
	}
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, err
	}
	tol := s.tolerance()
	if math.Abs(flo) < tol {
		return lo, nil
	}
	if math.Abs(fhi) < tol {
		return hi, nil
	}

	// grow the bracket until the objective changes sign
	for i := 0; flo*fhi > 0; i++ {
		if i == bracketAttempts {
			return 0, errors.Convergencef(
				"no sign change found in [%g, %g] after %d bracket expansions", lo, hi, i)
		}
		width := hi - lo
		if math.Abs(flo) < math.Abs(fhi) {
			lo -= bracketGrowth * width
			if flo, err = f(lo); err != nil {
				return 0, err
			}
		} else {
			hi += bracketGrowth * width
			if fhi, err = f(hi); err != nil {
				return 0, err
			}
		}
	}

	for i := 0; i < s.maxIterations(); i++ {
		// secant step, falling back to bisection when it leaves the bracket
		x := hi - fhi*(hi-lo)/(fhi-flo)
		if !(lo < x && x < hi) {
			x = 0.5 * (lo + hi)
		}
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		if math.Abs(fx) < tol || hi-lo < tol {
			return x, nil
		}
		if flo*fx < 0 {
			hi, fhi = x, fx
		} else {
			lo, flo = x, fx
		}
	}
	return 0, errors.Convergencef(
		"root not found within %d iterations, bracket [%g, %g]", s.maxIterations(), lo, hi)
}
