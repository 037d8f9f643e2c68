// Package credit provides the credit curve family. One Curve type stores a
// single native representation (survival probability, default probability,
// flat intensity or hazard rate) and exposes every representation through
// conversion accessors, mirroring the interest rate family on the credit
// side.
package credit

import (
	"math"

	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Kind tags the native representation a curve stores
type Kind int

const (
	// SurvivalProbability stores probabilities sv(origin, t) of surviving to t
	SurvivalProbability Kind = iota
	// DefaultProbability stores probabilities pd(origin, t) of defaulting by t
	DefaultProbability
	// FlatIntensity stores average default intensities over [origin, t]
	FlatIntensity
	// HazardRate stores instantaneous default intensities hz(t)
	HazardRate
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case SurvivalProbability:
		return "survival-probability"
	case DefaultProbability:
		return "default-probability"
	case FlatIntensity:
		return "flat-intensity"
	case HazardRate:
		return "hazard-rate"
	}
	return "unknown"
}

const (
	// defaultMarginalTenor is the marginal probability period length
	defaultMarginalTenor = 1.0
	// intensityStep is the time shift used for degenerate zero-length periods
	intensityStep = 1.0 / 365.25
)

// Curve is a credit curve with one native representation
type Curve struct {
	data          *curve.Curve
	kind          Kind
	origin        float64
	marginalTenor float64
	yf            curve.YearFraction
}

// Option configures optional curve parameters
type Option func(*Curve)

// WithOrigin sets the curve origin (date zero on the float axis)
func WithOrigin(origin float64) Option {
	return func(c *Curve) { c.origin = origin }
}

// WithMarginalTenor sets the marginal probability period length
func WithMarginalTenor(tenor float64) Option {
	return func(c *Curve) { c.marginalTenor = tenor }
}

// WithYearFraction sets the year fraction function for intensity periods
func WithYearFraction(yf curve.YearFraction) Option {
	return func(c *Curve) { c.yf = yf }
}

func newCurve(domain, values []float64, scheme interpolation.Scheme,
	kind Kind, opts ...Option) (*Curve, error) {
	data, err := curve.New(domain, values, scheme)
	if err != nil {
		return nil, err
	}
	c := &Curve{
		data:          data,
		kind:          kind,
		origin:        0.0,
		marginalTenor: defaultMarginalTenor,
		yf:            curve.Diff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewSurvivalProbability creates a curve storing survival probabilities.
// Values must lie in (0, 1]. A nil scheme defaults to log-linear
// interpolation.
func NewSurvivalProbability(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	for i, v := range values {
		if v <= 0 || v > 1 {
			return nil, errors.Domainf("survival probability must lie in (0, 1], got %g at index %d", v, i)
		}
	}
	if scheme == nil {
		scheme = interpolation.LogLinear{}
	}
	return newCurve(domain, values, scheme, SurvivalProbability, opts...)
}

// NewDefaultProbability creates a curve storing default probabilities.
// Values must lie in [0, 1). A nil scheme defaults to linear interpolation.
func NewDefaultProbability(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	for i, v := range values {
		if v < 0 || v >= 1 {
			return nil, errors.Domainf("default probability must lie in [0, 1), got %g at index %d", v, i)
		}
	}
	if scheme == nil {
		scheme = interpolation.Linear{}
	}
	return newCurve(domain, values, scheme, DefaultProbability, opts...)
}

// NewFlatIntensity creates a curve storing average default intensities.
// A nil scheme defaults to linear interpolation.
func NewFlatIntensity(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	if scheme == nil {
		scheme = interpolation.Linear{}
	}
	return newCurve(domain, values, scheme, FlatIntensity, opts...)
}

// NewHazardRate creates a curve storing instantaneous default intensities.
// A nil scheme defaults to piecewise constant interpolation.
func NewHazardRate(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	if scheme == nil {
		scheme = interpolation.ConstantLeft{}
	}
	return newCurve(domain, values, scheme, HazardRate, opts...)
}

// Kind returns the curve's native representation
func (c *Curve) Kind() Kind { return c.kind }

// Origin returns the curve's date zero on the float axis
func (c *Curve) Origin() float64 { return c.origin }

// MarginalTenor returns the marginal probability period length
func (c *Curve) MarginalTenor() float64 { return c.marginalTenor }

// Domain returns a copy of the curve's domain points
func (c *Curve) Domain() []float64 { return c.data.Domain() }

// Values returns a copy of the curve's native values
func (c *Curve) Values() []float64 { return c.data.Values() }

// Scheme returns the curve's interpolation scheme
func (c *Curve) Scheme() interpolation.Scheme { return c.data.Scheme() }

// Value evaluates the native representation at t
func (c *Curve) Value(t float64) (float64, error) {
	return c.data.Value(t)
}

// SurvivalProb returns the probability of surviving [start, end] given
// survival to start.
func (c *Curve) SurvivalProb(start, end float64) (float64, error) {
	return c.survivalFactor(start, end)
}

// SurvivalProbTo returns the probability of surviving [origin, t]
func (c *Curve) SurvivalProbTo(t float64) (float64, error) {
	return c.SurvivalProb(c.origin, t)
}

// DefaultProb returns the probability of defaulting in [start, end] given
// survival to start.
func (c *Curve) DefaultProb(start, end float64) (float64, error) {
	sv, err := c.survivalFactor(start, end)
	if err != nil {
		return 0, err
	}
	return 1.0 - sv, nil
}

// DefaultProbTo returns the probability of defaulting in [origin, t]
func (c *Curve) DefaultProbTo(t float64) (float64, error) {
	return c.DefaultProb(c.origin, t)
}

// FlatIntensity returns the average default intensity over [start, end]
func (c *Curve) FlatIntensity(start, end float64) (float64, error) {
	return c.intensity(start, end)
}

// FlatIntensityTo returns the average default intensity over [origin, t]
func (c *Curve) FlatIntensityTo(t float64) (float64, error) {
	return c.FlatIntensity(c.origin, t)
}

// HazardRate returns the instantaneous default intensity at t, derived from
// the derivative of the log survival probability for non-native
// representations.
func (c *Curve) HazardRate(t float64) (float64, error) {
	switch c.kind {
	case HazardRate:
		return c.Value(t)
	case FlatIntensity:
		// hz(t) = d/dt [lambda(t) * (t - origin)]
		l, err := c.Value(t)
		if err != nil {
			return 0, err
		}
		dl, err := c.data.Derivative(t)
		if err != nil {
			return 0, err
		}
		return l + (t-c.origin)*dl, nil
	default:
		return c.intensity(t, t+intensityStep)
	}
}

// MarginalSurvival returns the probability of surviving [t, t + marginal
// tenor] given survival to t.
func (c *Curve) MarginalSurvival(t float64) (float64, error) {
	return c.SurvivalProb(t, t+c.marginalTenor)
}

// MarginalDefault returns the probability of defaulting in [t, t + marginal
// tenor] given survival to t.
func (c *Curve) MarginalDefault(t float64) (float64, error) {
	return c.DefaultProb(t, t+c.marginalTenor)
}

// survival evaluates the native representation as a survival probability
// from the origin.
func (c *Curve) survival(t float64) (float64, error) {
	v, err := c.Value(t)
	if err != nil {
		return 0, err
	}
	if c.kind == DefaultProbability {
		return 1.0 - v, nil
	}
	return v, nil
}

// survivalFactor returns the conditional survival probability over
// [start, end] from the native representation.
func (c *Curve) survivalFactor(start, end float64) (float64, error) {
	if end < start {
		return 0, errors.Domainf("survival period end %g before start %g", end, start)
	}
	if start == end {
		return 1.0, nil
	}
	switch c.kind {
	case SurvivalProbability, DefaultProbability:
		// stored values are probabilities from the origin already
		if start == c.origin {
			return c.survival(end)
		}
		svs, err := c.survival(start)
		if err != nil {
			return 0, err
		}
		sve, err := c.survival(end)
		if err != nil {
			return 0, err
		}
		if svs <= 0 {
			return 0, errors.Domainf("non-positive survival probability %g at %g", svs, start)
		}
		return sve / svs, nil
	default:
		l, err := c.intensity(start, end)
		if err != nil {
			return 0, err
		}
		return math.Exp(-l * c.yf(start, end)), nil
	}
}

// intensity returns the average default intensity over [start, end] from
// the native representation.
func (c *Curve) intensity(start, end float64) (float64, error) {
	if end < start {
		return 0, errors.Domainf("intensity period end %g before start %g", end, start)
	}
	switch c.kind {
	case FlatIntensity:
		if start == end {
			if start == c.origin {
				return c.Value(c.origin)
			}
			return c.intensity(start, start+intensityStep)
		}
		if start == c.origin {
			return c.Value(end)
		}
		ls, err := c.Value(start)
		if err != nil {
			return 0, err
		}
		le, err := c.Value(end)
		if err != nil {
			return 0, err
		}
		tau := c.yf(start, end)
		if tau == 0 {
			return 0, errors.Domainf("intensity requires a non-zero day count span at [%g, %g]", start, end)
		}
		return (le*c.yf(c.origin, end) - ls*c.yf(c.origin, start)) / tau, nil
	case HazardRate:
		if start == end {
			return c.Value(start)
		}
		v, err := c.data.Integrate(start, end)
		if err != nil {
			return 0, err
		}
		return v / c.yf(start, end), nil
	default:
		if start == end {
			if start == c.origin {
				return c.intensityProxyAtOrigin()
			}
			return c.intensity(start, start+intensityStep)
		}
		sv, err := c.survivalFactor(start, end)
		if err != nil {
			return 0, err
		}
		if sv <= 0 {
			return 0, errors.Domainf("non-positive survival probability %g over [%g, %g]", sv, start, end)
		}
		tau := c.yf(start, end)
		if tau == 0 {
			return 0, errors.Domainf("intensity requires a non-zero day count span at [%g, %g]", start, end)
		}
		return -math.Log(sv) / tau, nil
	}
}

// intensityProxyAtOrigin resolves the degenerate intensity query at the
// origin to the intensity over the first period after the origin.
func (c *Curve) intensityProxyAtOrigin() (float64, error) {
	for _, d := range c.data.Domain() {
		if d > c.origin {
			return c.intensity(c.origin, d)
		}
	}
	return 0, errors.Domainf("intensity at origin undefined: no domain point after origin %g", c.origin)
}

// Bumped returns a new curve with a parallel intensity shift applied in the
// native representation. Stored probabilities are scaled by exp(-shift * t)
// on the survival side.
func (c *Curve) Bumped(shift float64) *Curve {
	switch c.kind {
	case SurvivalProbability, DefaultProbability:
		domain := c.data.Domain()
		values := c.data.Values()
		for i := range values {
			sv := values[i]
			if c.kind == DefaultProbability {
				sv = 1.0 - sv
			}
			sv *= math.Exp(-shift * c.yf(c.origin, domain[i]))
			if c.kind == DefaultProbability {
				values[i] = 1.0 - sv
			} else {
				values[i] = sv
			}
		}
		data, err := curve.New(domain, values, c.data.Scheme())
		if err != nil {
			// domain unchanged, cannot fail
			return c
		}
		bumped := *c
		bumped.data = data
		return &bumped
	default:
		bumped := *c
		bumped.data = c.data.Bumped(shift)
		return &bumped
	}
}
