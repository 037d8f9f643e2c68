package rate

import (
	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// CastOption configures a curve conversion
type CastOption func(*castConfig)

type castConfig struct {
	domain []float64
	scheme interpolation.Scheme
}

// OnDomain samples the source curve at the given domain points instead of
// its native domain.
func OnDomain(domain []float64) CastOption {
	return func(c *castConfig) { c.domain = append([]float64(nil), domain...) }
}

// WithScheme sets the interpolation scheme of the target curve. The default
// is the source curve's scheme.
func WithScheme(scheme interpolation.Scheme) CastOption {
	return func(c *castConfig) { c.scheme = scheme }
}

// cast samples the source through the given per-point conversion and builds
// the target curve in the requested kind. Sampling failures are reported as
// conversion errors.
func cast(src *Curve, kind Kind, sample func(t float64) (float64, error),
	opts ...CastOption) (*Curve, error) {
	cfg := castConfig{
		domain: src.Domain(),
		scheme: src.Scheme(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	values := make([]float64, len(cfg.domain))
	for i, t := range cfg.domain {
		v, err := sample(t)
		if err != nil {
			return nil, errors.WrapKindf(err, errors.KindConversion,
				"cannot convert %s curve to %s at %g", src.kind, kind, t)
		}
		values[i] = v
	}
	target, err := newCurve(cfg.domain, values, cfg.scheme, kind)
	if err != nil {
		return nil, errors.WrapKindf(err, errors.KindConversion,
			"cannot convert %s curve to %s", src.kind, kind)
	}
	target.origin = src.origin
	target.forwardTenor = src.forwardTenor
	target.yf = src.yf
	return target, nil
}

// ToZeroRate converts any rate curve into a zero rate curve by sampling
// zero rates from the origin at the domain points.
func ToZeroRate(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == ZeroRate && len(opts) == 0 {
		return src, nil
	}
	return cast(src, ZeroRate, src.ZeroRateTo, opts...)
}

// ToDiscountFactor converts any rate curve into a discount factor curve by
// sampling factors from the origin at the domain points.
func ToDiscountFactor(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == DiscountFactor && len(opts) == 0 {
		return src, nil
	}
	return cast(src, DiscountFactor, src.DiscountFactorTo, opts...)
}

// ToCashRate converts any rate curve into a cash rate curve by sampling
// forward rates over the forward tenor at the domain points.
func ToCashRate(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == CashRate && len(opts) == 0 {
		return src, nil
	}
	sample := func(t float64) (float64, error) {
		return src.CashRate(t, t+src.forwardTenor)
	}
	return cast(src, CashRate, sample, opts...)
}

// ToShortRate converts any rate curve into a short rate curve by sampling
// instantaneous rates at the domain points. Unless overridden the target
// interpolates piecewise constant, the natural short rate basis.
func ToShortRate(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == ShortRate && len(opts) == 0 {
		return src, nil
	}
	opts = append([]CastOption{WithScheme(interpolation.ConstantLeft{})}, opts...)
	return cast(src, ShortRate, src.ShortRate, opts...)
}
