// Package curve provides the shared curve data type all rate and credit
// curve families are built on. A Curve pairs a strictly increasing float
// domain with index-aligned values and delegates evaluation to an
// interpolation scheme. Curves are immutable after construction; Shifted
// and the algebra helpers return new instances.
package curve

import (
	"sort"

	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Curve maps a float domain to values through an interpolation scheme
type Curve struct {
	domain []float64
	values []float64
	scheme interpolation.Scheme
}

// New creates a curve from paired domain and value sequences.
// The domain must be strictly increasing with no duplicates.
func New(domain, values []float64, scheme interpolation.Scheme) (*Curve, error) {
	if len(domain) != len(values) {
		return nil, errors.Domainf("curve requires equal length input for domain and values: %d != %d",
			len(domain), len(values))
	}
	if len(domain) == 0 {
		return nil, errors.Domain("curve requires at least one point")
	}
	for i := 1; i < len(domain); i++ {
		if domain[i] <= domain[i-1] {
			return nil, errors.Domainf("curve domain must be strictly increasing: domain[%d]=%g, domain[%d]=%g",
				i-1, domain[i-1], i, domain[i])
		}
	}
	if scheme == nil {
		scheme = interpolation.Linear{}
	}
	c := &Curve{
		domain: append([]float64(nil), domain...),
		values: append([]float64(nil), values...),
		scheme: scheme,
	}
	return c, nil
}

// Value evaluates the curve at x
func (c *Curve) Value(x float64) (float64, error) {
	return c.scheme.Value(c.domain, c.values, x)
}

// Domain returns a copy of the curve's domain points
func (c *Curve) Domain() []float64 {
	return append([]float64(nil), c.domain...)
}

// Values returns a copy of the curve's values
func (c *Curve) Values() []float64 {
	return append([]float64(nil), c.values...)
}

// Scheme returns the curve's interpolation scheme
func (c *Curve) Scheme() interpolation.Scheme {
	return c.scheme
}

// Shifted returns a new curve with every domain point translated by dx.
// Evaluating the shifted curve at x equals evaluating the original at x-dx.
func (c *Curve) Shifted(dx float64) *Curve {
	domain := make([]float64, len(c.domain))
	for i, d := range c.domain {
		domain[i] = d + dx
	}
	return &Curve{domain: domain, values: append([]float64(nil), c.values...), scheme: c.scheme}
}

// WithValue returns a new curve with the value at node index i replaced
func (c *Curve) WithValue(i int, v float64) (*Curve, error) {
	if i < 0 || i >= len(c.values) {
		return nil, errors.Domainf("node index %d out of range [0, %d)", i, len(c.values))
	}
	values := append([]float64(nil), c.values...)
	values[i] = v
	return &Curve{domain: append([]float64(nil), c.domain...), values: values, scheme: c.scheme}, nil
}

// Bumped returns a new curve with every value translated by shift
func (c *Curve) Bumped(shift float64) *Curve {
	values := make([]float64, len(c.values))
	for i, v := range c.values {
		values[i] = v + shift
	}
	return &Curve{domain: append([]float64(nil), c.domain...), values: values, scheme: c.scheme}
}

// Integrate returns the definite integral of the curve over [a, b].
// The interpolation scheme must support integration.
func (c *Curve) Integrate(a, b float64) (float64, error) {
	in, ok := c.scheme.(interpolation.Integrator)
	if !ok {
		return 0, errors.Domainf("scheme %s does not support integration", c.scheme.Name())
	}
	return in.Integrate(c.domain, c.values, a, b)
}

// Derivative returns the first derivative of the curve at x.
// The interpolation scheme must support differentiation.
func (c *Curve) Derivative(x float64) (float64, error) {
	d, ok := c.scheme.(interpolation.Differentiator)
	if !ok {
		return 0, errors.Domainf("scheme %s does not support derivatives", c.scheme.Name())
	}
	return d.Derivative(c.domain, c.values, x)
}

// combine merges the domains of two curves and applies op pointwise
func combine(a, b *Curve, op func(x, y float64) (float64, error)) (*Curve, error) {
	seen := make(map[float64]bool, len(a.domain)+len(b.domain))
	var domain []float64
	for _, d := range append(a.Domain(), b.domain...) {
		if !seen[d] {
			seen[d] = true
			domain = append(domain, d)
		}
	}
	sort.Float64s(domain)
	values := make([]float64, len(domain))
	for i, x := range domain {
		av, err := a.Value(x)
		if err != nil {
			return nil, err
		}
		bv, err := b.Value(x)
		if err != nil {
			return nil, err
		}
		values[i], err = op(av, bv)
		if err != nil {
			return nil, err
		}
	}
	return New(domain, values, a.scheme)
}

// Add returns the pointwise sum of two curves over the union of domains
func (c *Curve) Add(other *Curve) (*Curve, error) {
	return combine(c, other, func(x, y float64) (float64, error) { return x + y, nil })
}

// Sub returns the pointwise difference of two curves over the union of domains
func (c *Curve) Sub(other *Curve) (*Curve, error) {
	return combine(c, other, func(x, y float64) (float64, error) { return x - y, nil })
}

// Mul returns the pointwise product of two curves over the union of domains
func (c *Curve) Mul(other *Curve) (*Curve, error) {
	return combine(c, other, func(x, y float64) (float64, error) { return x * y, nil })
}

// Div returns the pointwise quotient of two curves over the union of domains
func (c *Curve) Div(other *Curve) (*Curve, error) {
	return combine(c, other, func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, errors.Domain("curve division requires non-zero values")
		}
		return x / y, nil
	})
}
