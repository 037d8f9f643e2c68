// Package rate provides the interest rate curve family. One Curve type
// stores a single native representation (zero rate, discount factor, cash
// rate or short rate) and exposes every representation through conversion
// accessors. All accessors are pure; conversions between families are free
// functions in convert.go.
package rate

import (
	"math"

	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Kind tags the native representation a curve stores
type Kind int

const (
	// ZeroRate stores continuously compounded zero rates z(origin, t)
	ZeroRate Kind = iota
	// DiscountFactor stores discount factors df(origin, t)
	DiscountFactor
	// CashRate stores simple forward rates f(t, t+tenor)
	CashRate
	// ShortRate stores instantaneous short rates r(t)
	ShortRate
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case ZeroRate:
		return "zero-rate"
	case DiscountFactor:
		return "discount-factor"
	case CashRate:
		return "cash-rate"
	case ShortRate:
		return "short-rate"
	}
	return "unknown"
}

const (
	// defaultForwardTenor is the cash rate period when none is configured
	defaultForwardTenor = 0.25
	// shortRateStep is the time shift used for degenerate zero-length periods
	shortRateStep = 1.0 / 365.25
)

// Curve is an interest rate curve with one native representation
type Curve struct {
	data         *curve.Curve
	kind         Kind
	origin       float64
	forwardTenor float64
	yf           curve.YearFraction
}

// Option configures optional curve parameters
type Option func(*Curve)

// WithOrigin sets the curve origin (date zero on the float axis)
func WithOrigin(origin float64) Option {
	return func(c *Curve) { c.origin = origin }
}

// WithForwardTenor sets the cash rate period length
func WithForwardTenor(tenor float64) Option {
	return func(c *Curve) { c.forwardTenor = tenor }
}

// WithYearFraction sets the year fraction function for rate periods
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
		data:         data,
		kind:         kind,
		origin:       0.0,
		forwardTenor: defaultForwardTenor,
		yf:           curve.Diff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewZeroRate creates a curve storing continuously compounded zero rates.
// A nil scheme defaults to linear interpolation.
func NewZeroRate(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	if scheme == nil {
		scheme = interpolation.Linear{}
	}
	return newCurve(domain, values, scheme, ZeroRate, opts...)
}

// NewDiscountFactor creates a curve storing discount factors.
// A nil scheme defaults to log-linear interpolation.
func NewDiscountFactor(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	for i, v := range values {
		if v <= 0 {
			return nil, errors.Domainf("discount factor curve requires positive values, got %g at index %d", v, i)
		}
	}
	if scheme == nil {
		scheme = interpolation.LogLinear{}
	}
	return newCurve(domain, values, scheme, DiscountFactor, opts...)
}

// NewCashRate creates a curve storing simple forward rates over the
// forward tenor. A nil scheme defaults to linear interpolation.
func NewCashRate(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	if scheme == nil {
		scheme = interpolation.Linear{}
	}
	return newCurve(domain, values, scheme, CashRate, opts...)
}

// NewShortRate creates a curve storing instantaneous short rates.
// A nil scheme defaults to piecewise constant interpolation.
func NewShortRate(domain, values []float64, scheme interpolation.Scheme, opts ...Option) (*Curve, error) {
	if scheme == nil {
		scheme = interpolation.ConstantLeft{}
	}
	return newCurve(domain, values, scheme, ShortRate, opts...)
}

// Kind returns the curve's native representation
func (c *Curve) Kind() Kind { return c.kind }

// Origin returns the curve's date zero on the float axis
func (c *Curve) Origin() float64 { return c.origin }

// ForwardTenor returns the cash rate period length
func (c *Curve) ForwardTenor() float64 { return c.forwardTenor }

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

// ZeroRate returns the continuously compounded rate over [start, end]
func (c *Curve) ZeroRate(start, end float64) (float64, error) {
	return c.compoundingRate(start, end)
}

// ZeroRateTo returns the continuously compounded rate over [origin, t]
func (c *Curve) ZeroRateTo(t float64) (float64, error) {
	return c.ZeroRate(c.origin, t)
}

// DiscountFactor returns the discount factor over [start, end]
func (c *Curve) DiscountFactor(start, end float64) (float64, error) {
	return c.compoundingFactor(start, end)
}

// DiscountFactorTo returns the discount factor over [origin, t]
func (c *Curve) DiscountFactorTo(t float64) (float64, error) {
	return c.DiscountFactor(c.origin, t)
}

// CashRate returns the simply compounded forward rate over [start, end]
func (c *Curve) CashRate(start, end float64) (float64, error) {
	if c.kind == CashRate && end == start+c.forwardTenor {
		return c.Value(start)
	}
	df, err := c.compoundingFactor(start, end)
	if err != nil {
		return 0, err
	}
	tau := c.yf(start, end)
	if tau == 0 {
		return 0, errors.Domainf("cash rate requires a non-zero day count span at [%g, %g]", start, end)
	}
	return (1.0/df - 1.0) / tau, nil
}

// CashRateTo returns the simply compounded rate over [origin, t]
func (c *Curve) CashRateTo(t float64) (float64, error) {
	return c.CashRate(c.origin, t)
}

// ShortRate returns the instantaneous short rate at t, derived from the
// derivative of the log discount factor for non-native representations.
func (c *Curve) ShortRate(t float64) (float64, error) {
	switch c.kind {
	case ShortRate:
		return c.Value(t)
	case ZeroRate:
		// r(t) = d/dt [z(t) * (t - origin)] = z(t) + (t-origin) * z'(t)
		z, err := c.Value(t)
		if err != nil {
			return 0, err
		}
		dz, err := c.data.Derivative(t)
		if err != nil {
			return 0, err
		}
		return z + (t-c.origin)*dz, nil
	case DiscountFactor:
		// r(t) = -d/dt ln df(t) = -df'(t) / df(t)
		df, err := c.Value(t)
		if err != nil {
			return 0, err
		}
		if df <= 0 {
			return 0, errors.Domainf("short rate requires a positive discount factor at %g", t)
		}
		ddf, err := c.data.Derivative(t)
		if err != nil {
			return 0, err
		}
		return -ddf / df, nil
	default:
		return c.compoundingRate(t, t+shortRateStep)
	}
}

// SwapAnnuity returns the accrual-weighted sum of discount factors over a
// payment schedule.
func (c *Curve) SwapAnnuity(schedule []float64) (float64, error) {
	if len(schedule) < 2 {
		return 0, errors.Domain("swap annuity requires at least two schedule dates")
	}
	var annuity float64
	for i := 1; i < len(schedule); i++ {
		df, err := c.DiscountFactorTo(schedule[i])
		if err != nil {
			return 0, err
		}
		annuity += df * c.yf(schedule[i-1], schedule[i])
	}
	return annuity, nil
}

// compoundingFactor returns the discount factor over [start, end] from the
// native representation.
func (c *Curve) compoundingFactor(start, end float64) (float64, error) {
	if end < start {
		return 0, errors.Domainf("discount factor period end %g before start %g", end, start)
	}
	if start == end {
		return 1.0, nil
	}
	switch c.kind {
	case DiscountFactor:
		// stored values are factors from the origin already
		if start == c.origin {
			return c.Value(end)
		}
		dfs, err := c.Value(start)
		if err != nil {
			return 0, err
		}
		dfe, err := c.Value(end)
		if err != nil {
			return 0, err
		}
		if dfs <= 0 {
			return 0, errors.Domainf("non-positive discount factor %g at %g", dfs, start)
		}
		return dfe / dfs, nil
	case CashRate:
		// compound simple rates over forward tenor periods
		df := 1.0
		current := start
		for current+c.forwardTenor < end {
			r, err := c.Value(current)
			if err != nil {
				return 0, err
			}
			df /= 1.0 + r*c.yf(current, current+c.forwardTenor)
			current += c.forwardTenor
		}
		r, err := c.Value(current)
		if err != nil {
			return 0, err
		}
		df /= 1.0 + r*c.yf(current, end)
		return df, nil
	default:
		r, err := c.compoundingRate(start, end)
		if err != nil {
			return 0, err
		}
		return math.Exp(-r * c.yf(start, end)), nil
	}
}

// compoundingRate returns the continuously compounded rate over [start, end]
// from the native representation.
func (c *Curve) compoundingRate(start, end float64) (float64, error) {
	if end < start {
		return 0, errors.Domainf("rate period end %g before start %g", end, start)
	}
	switch c.kind {
	case ZeroRate:
		if start == end {
			if start == c.origin {
				return c.Value(c.origin)
			}
			return c.compoundingRate(start, start+shortRateStep)
		}
		if start == c.origin {
			return c.Value(end)
		}
		zs, err := c.Value(start)
		if err != nil {
			return 0, err
		}
		ze, err := c.Value(end)
		if err != nil {
			return 0, err
		}
		tau := c.yf(start, end)
		if tau == 0 {
			return 0, errors.Domainf("zero rate requires a non-zero day count span at [%g, %g]", start, end)
		}
		return (ze*c.yf(c.origin, end) - zs*c.yf(c.origin, start)) / tau, nil
	case ShortRate:
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
			if c.kind == CashRate {
				return c.Value(start)
			}
			// zero rate proxy at origin from the first positive node
			if start == c.origin {
				return c.zeroRateProxyAtOrigin()
			}
			return c.compoundingRate(start, start+shortRateStep)
		}
		df, err := c.compoundingFactor(start, end)
		if err != nil {
			return 0, err
		}
		if df <= 0 {
			return 0, errors.Domainf("non-positive compounding factor %g over [%g, %g]", df, start, end)
		}
		tau := c.yf(start, end)
		if tau == 0 {
			return 0, errors.Domainf("zero rate requires a non-zero day count span at [%g, %g]", start, end)
		}
		return -math.Log(df) / tau, nil
	}
}

// zeroRateProxyAtOrigin resolves the degenerate zero rate query at the
// origin to the rate over the first period after the origin.
func (c *Curve) zeroRateProxyAtOrigin() (float64, error) {
	for _, d := range c.data.Domain() {
		if d > c.origin {
			return c.compoundingRate(c.origin, d)
		}
	}
	return 0, errors.Domainf("zero rate at origin undefined: no domain point after origin %g", c.origin)
}

// Bumped returns a new curve with a parallel zero rate shift applied in the
// native representation. Discount factors are scaled by exp(-shift * t).
func (c *Curve) Bumped(shift float64) *Curve {
	bumped := *c
	if c.kind == DiscountFactor {
		domain := c.data.Domain()
		values := c.data.Values()
		for i := range values {
			values[i] *= math.Exp(-shift * c.yf(c.origin, domain[i]))
		}
		data, err := curve.New(domain, values, c.data.Scheme())
		if err != nil {
			// domain unchanged, cannot fail
			return c
		}
		bumped.data = data
		return &bumped
	}
	bumped.data = c.data.Bumped(shift)
	return &bumped
}

// BumpedNode returns a new curve with the zero rate shift applied to a
// single node only.
func (c *Curve) BumpedNode(i int, shift float64) (*Curve, error) {
	values := c.data.Values()
	if i < 0 || i >= len(values) {
		return nil, errors.Domainf("node index %d out of range [0, %d)", i, len(values))
	}
	if c.kind == DiscountFactor {
		t := c.data.Domain()[i]
		values[i] *= math.Exp(-shift * c.yf(c.origin, t))
	} else {
		values[i] += shift
	}
	data, err := c.data.WithValue(i, values[i])
	if err != nil {
		return nil, err
	}
	bumped := *c
	bumped.data = data
	return &bumped, nil
}

// WithNodeValue returns a new curve with the native value at node i replaced
func (c *Curve) WithNodeValue(i int, v float64) (*Curve, error) {
	data, err := c.data.WithValue(i, v)
	if err != nil {
		return nil, err
	}
	replaced := *c
	replaced.data = data
	return &replaced, nil
}
