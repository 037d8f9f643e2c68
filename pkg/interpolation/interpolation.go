// Package interpolation provides the interpolation schemes shared by all
// curve types. A scheme maps a strictly increasing domain with index-aligned
// values and a query point to an interpolated value. Out-of-domain queries
// extrapolate flat unless the scheme is wrapped in Strict.
package interpolation

import (
	"math"
	"sort"

	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Scheme interpolates a value at x from a domain/values pair.
// A query that hits a domain point exactly returns that value with no
// floating drift.
type Scheme interface {
	Value(domain, values []float64, x float64) (float64, error)
	Name() string
}

// Differentiator is implemented by schemes that expose a first derivative.
type Differentiator interface {
	Derivative(domain, values []float64, x float64) (float64, error)
}

// Integrator is implemented by schemes that expose a definite integral.
type Integrator interface {
	Integrate(domain, values []float64, a, b float64) (float64, error)
}

// segment locates the index i such that domain[i] <= x < domain[i+1],
// clamped to the first and last segment. exact reports a direct hit.
func segment(domain []float64, x float64) (i int, exact bool) {
	n := len(domain)
	i = sort.SearchFloat64s(domain, x)
	if i < n && domain[i] == x {
		return i, true
	}
	// SearchFloat64s returns the insertion point, the segment starts left of it
	i--
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
		if n == 1 {
			i = 0
		}
	}
	return i, false
}

func empty(domain, values []float64) error {
	if len(domain) == 0 || len(values) == 0 {
		return errors.Domain("no data points for interpolation provided")
	}
	if len(domain) != len(values) {
		return errors.Domainf("domain and values length mismatch: %d != %d",
			len(domain), len(values))
	}
	return nil
}

// Linear interpolates linearly between neighbouring points and
// extrapolates flat beyond the domain.
type Linear struct{}

// Name returns the scheme name
func (Linear) Name() string { return "linear" }

// Value returns the linearly interpolated value at x
func (Linear) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	i, exact := segment(domain, x)
	if exact {
		return values[i], nil
	}
	if len(domain) == 1 || x <= domain[0] {
		return values[0], nil
	}
	n := len(domain)
	if x >= domain[n-1] {
		return values[n-1], nil
	}
	w := (x - domain[i]) / (domain[i+1] - domain[i])
	return values[i] + w*(values[i+1]-values[i]), nil
}

// Derivative returns the slope of the segment containing x, zero outside
// the domain.
func (Linear) Derivative(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	n := len(domain)
	if n == 1 || x < domain[0] || x > domain[n-1] {
		return 0, nil
	}
	i, exact := segment(domain, x)
	if exact && i == n-1 {
		i = n - 2
	}
	return (values[i+1] - values[i]) / (domain[i+1] - domain[i]), nil
}

// Integrate returns the definite integral over [a, b] using the exact
// trapezoid area of each linear segment, with flat extrapolation outside.
func (l Linear) Integrate(domain, values []float64, a, b float64) (float64, error) {
	return integrate(l, domain, values, a, b, func(i int, lo, hi float64) float64 {
		ylo, _ := l.Value(domain, values, lo)
		yhi, _ := l.Value(domain, values, hi)
		return 0.5 * (ylo + yhi) * (hi - lo)
	})
}

// LogLinear interpolates the logarithm of the values linearly, the natural
// basis for discount factors and survival probabilities. All values must be
// strictly positive.
type LogLinear struct{}

// Name returns the scheme name
func (LogLinear) Name() string { return "log-linear" }

// Value returns exp of the linearly interpolated log value at x
func (LogLinear) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	i, exact := segment(domain, x)
	if exact {
		return values[i], nil
	}
	logs := make([]float64, len(values))
	for j, v := range values {
		if v <= 0 {
			return 0, errors.Domainf(
				"log-linear interpolation requires positive values, got %g at index %d", v, j)
		}
		logs[j] = math.Log(v)
	}
	y, err := Linear{}.Value(domain, logs, x)
	if err != nil {
		return 0, err
	}
	return math.Exp(y), nil
}

// Derivative returns d/dx of the log-linear interpolant,
// i.e. y(x) * d/dx log y(x).
func (ll LogLinear) Derivative(domain, values []float64, x float64) (float64, error) {
	y, err := ll.Value(domain, values, x)
	if err != nil {
		return 0, err
	}
	logs := make([]float64, len(values))
	for j, v := range values {
		logs[j] = math.Log(v)
	}
	slope, err := Linear{}.Derivative(domain, logs, x)
	if err != nil {
		return 0, err
	}
	return y * slope, nil
}

// ConstantLeft interpolates piecewise constant, taking the value of the
// left neighbouring point (right-continuous step function).
type ConstantLeft struct{}

// Name returns the scheme name
func (ConstantLeft) Name() string { return "constant-left" }

// Value returns the value of the closest domain point at or left of x
func (ConstantLeft) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	n := len(domain)
	if x <= domain[0] {
		return values[0], nil
	}
	if x >= domain[n-1] {
		return values[n-1], nil
	}
	i, _ := segment(domain, x)
	return values[i], nil
}

// Derivative is zero everywhere for a step function
func (ConstantLeft) Derivative(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	return 0, nil
}

// Integrate returns the exact step-function integral over [a, b].
func (c ConstantLeft) Integrate(domain, values []float64, a, b float64) (float64, error) {
	return integrate(c, domain, values, a, b, func(i int, lo, hi float64) float64 {
		y, _ := c.Value(domain, values, lo)
		return y * (hi - lo)
	})
}

// ConstantRight interpolates piecewise constant, taking the value of the
// right neighbouring point.
type ConstantRight struct{}

// Name returns the scheme name
func (ConstantRight) Name() string { return "constant-right" }

// Value returns the value of the closest domain point at or right of x
func (ConstantRight) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	n := len(domain)
	if x <= domain[0] {
		return values[0], nil
	}
	if x >= domain[n-1] {
		return values[n-1], nil
	}
	i, exact := segment(domain, x)
	if exact {
		return values[i], nil
	}
	return values[i+1], nil
}

// Nearest interpolates to the value of the closest domain point.
type Nearest struct{}

// Name returns the scheme name
func (Nearest) Name() string { return "nearest" }

// Value returns the value of the domain point closest to x
func (Nearest) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	n := len(domain)
	if n == 1 || x <= domain[0] {
		return values[0], nil
	}
	if x >= domain[n-1] {
		return values[n-1], nil
	}
	i, exact := segment(domain, x)
	if exact {
		return values[i], nil
	}
	if x-domain[i] <= domain[i+1]-x {
		return values[i], nil
	}
	return values[i+1], nil
}

// Strict wraps a scheme and rejects out-of-domain queries with a domain
// error instead of extrapolating.
type Strict struct {
	Scheme Scheme
}

// Name returns the scheme name
func (s Strict) Name() string { return s.Scheme.Name() + "-strict" }

// Value returns the wrapped scheme's value, failing outside the domain
func (s Strict) Value(domain, values []float64, x float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	if x < domain[0] || x > domain[len(domain)-1] {
		return 0, errors.Domainf("extrapolation at %g outside domain [%g, %g]",
			x, domain[0], domain[len(domain)-1])
	}
	return s.Scheme.Value(domain, values, x)
}

// Derivative forwards to the wrapped scheme, failing outside the domain
func (s Strict) Derivative(domain, values []float64, x float64) (float64, error) {
	if x < domain[0] || x > domain[len(domain)-1] {
		return 0, errors.Domainf("extrapolation at %g outside domain [%g, %g]",
			x, domain[0], domain[len(domain)-1])
	}
	d, ok := s.Scheme.(Differentiator)
	if !ok {
		return 0, errors.Domainf("scheme %s does not support derivatives", s.Scheme.Name())
	}
	return d.Derivative(domain, values, x)
}

// integrate splits [a, b] at the interior domain points and sums the
// per-segment areas provided by the scheme.
func integrate(s Scheme, domain, values []float64, a, b float64,
	area func(i int, lo, hi float64) float64) (float64, error) {
	if err := empty(domain, values); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	sign := 1.0
	if b < a {
		a, b, sign = b, a, -1.0
	}
	cuts := []float64{a}
	for _, d := range domain {
		if a < d && d < b {
			cuts = append(cuts, d)
		}
	}
	cuts = append(cuts, b)
	var total float64
	for i := 0; i < len(cuts)-1; i++ {
		total += area(i, cuts[i], cuts[i+1])
	}
	return sign * total, nil
}

// ByName resolves a scheme from its configured name.
func ByName(name string) (Scheme, error) {
	switch name {
	case "", "linear":
		return Linear{}, nil
	case "log-linear", "loglinear":
		return LogLinear{}, nil
	case "constant", "constant-left":
		return ConstantLeft{}, nil
	case "constant-right":
		return ConstantRight{}, nil
	case "nearest":
		return Nearest{}, nil
	}
	return nil, errors.Domainf("unknown interpolation scheme %q", name)
}
