package credit

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
	target.marginalTenor = src.marginalTenor
	target.yf = src.yf
	return target, nil
}

// ToSurvivalProbability converts any credit curve into a survival
// probability curve by sampling probabilities from the origin at the domain
// points.
func ToSurvivalProbability(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == SurvivalProbability && len(opts) == 0 {
		return src, nil
	}
	return cast(src, SurvivalProbability, src.SurvivalProbTo, opts...)
}

// ToDefaultProbability converts any credit curve into a default probability
// curve by sampling probabilities from the origin at the domain points.
// Unless overridden the target interpolates linearly, probabilities near
// one have no log basis.
func ToDefaultProbability(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == DefaultProbability && len(opts) == 0 {
		return src, nil
	}
	opts = append([]CastOption{WithScheme(interpolation.Linear{})}, opts...)
	return cast(src, DefaultProbability, src.DefaultProbTo, opts...)
}

// ToFlatIntensity converts any credit curve into a flat intensity curve by
// sampling average intensities from the origin at the domain points.
func ToFlatIntensity(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == FlatIntensity && len(opts) == 0 {
		return src, nil
	}
	opts = append([]CastOption{WithScheme(interpolation.Linear{})}, opts...)
	return cast(src, FlatIntensity, src.FlatIntensityTo, opts...)
}

// ToHazardRate converts any credit curve into a hazard rate curve by
// sampling instantaneous intensities at the domain points. Unless
// overridden the target interpolates piecewise constant.
func ToHazardRate(src *Curve, opts ...CastOption) (*Curve, error) {
	if src.kind == HazardRate && len(opts) == 0 {
		return src, nil
	}
	opts = append([]CastOption{WithScheme(interpolation.ConstantLeft{})}, opts...)
	return cast(src, HazardRate, src.HazardRate, opts...)
}
