package curve

import (
	"time"

	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// DateCurve wraps a Curve whose domain is given as dates. Dates are mapped
// onto the float axis through the day count function relative to the origin;
// interpolation happens on floats. The exposed domain stays the original
// date sequence.
type DateCurve struct {
	curve    *Curve
	dates    []time.Time
	origin   time.Time
	dayCount DayCount
}

// NewDate creates a date curve from paired date and value sequences.
// A zero origin defaults to the first date, a nil day count to ActAct365.
func NewDate(dates []time.Time, values []float64, scheme interpolation.Scheme,
	origin time.Time, dayCount DayCount) (*DateCurve, error) {
	if len(dates) == 0 {
		return nil, errors.Domain("date curve requires at least one point")
	}
	if len(dates) != len(values) {
		return nil, errors.Domainf("date curve requires equal length input for domain and values: %d != %d",
			len(dates), len(values))
	}
	if dayCount == nil {
		dayCount = ActAct365
	}
	if origin.IsZero() {
		origin = dates[0]
	}
	domain := make([]float64, len(dates))
	for i, d := range dates {
		domain[i] = dayCount(origin, d)
	}
	c, err := New(domain, values, scheme)
	if err != nil {
		return nil, err
	}
	return &DateCurve{
		curve:    c,
		dates:    append([]time.Time(nil), dates...),
		origin:   origin,
		dayCount: dayCount,
	}, nil
}

// ValueAt evaluates the curve at a date
func (dc *DateCurve) ValueAt(d time.Time) (float64, error) {
	return dc.curve.Value(dc.dayCount(dc.origin, d))
}

// Value evaluates the curve at an already day-counted time point
func (dc *DateCurve) Value(x float64) (float64, error) {
	return dc.curve.Value(x)
}

// Dates returns a copy of the curve's date domain
func (dc *DateCurve) Dates() []time.Time {
	return append([]time.Time(nil), dc.dates...)
}

// Origin returns the curve's date zero
func (dc *DateCurve) Origin() time.Time {
	return dc.origin
}

// YearFraction returns the day count from the origin to a date
func (dc *DateCurve) YearFraction(d time.Time) float64 {
	return dc.dayCount(dc.origin, d)
}

// DayCountBetween returns the day count between two dates
func (dc *DateCurve) DayCountBetween(start, end time.Time) float64 {
	return dc.dayCount(start, end)
}

// ToCurve returns the underlying float curve. Evaluating it at a
// day-counted x gives identical numbers to ValueAt on the date.
func (dc *DateCurve) ToCurve() *Curve {
	return dc.curve
}

// IntegrateBetween returns the integral of the curve between two dates,
// expressed as an annualized rate over the period.
func (dc *DateCurve) IntegrateBetween(start, end time.Time) (float64, error) {
	s := dc.YearFraction(start)
	e := dc.YearFraction(end)
	if s == e {
		return 0, errors.Domain("integration requires a non-zero day count span")
	}
	v, err := dc.curve.Integrate(s, e)
	if err != nil {
		return 0, err
	}
	return v / (e - s), nil
}

// DerivativeAt returns the first derivative of the curve at a date
func (dc *DateCurve) DerivativeAt(d time.Time) (float64, error) {
	return dc.curve.Derivative(dc.YearFraction(d))
}
