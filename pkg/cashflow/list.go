package cashflow

import (
	"sort"

	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/option"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// List is an ordered collection of payoffs describing a leg or product
type List struct {
	payoffs []Payoff
}

// NewList creates a list from payoffs, ordered by pay date
func NewList(payoffs ...Payoff) *List {
	sorted := append([]Payoff(nil), payoffs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pay() < sorted[j].Pay()
	})
	return &List{payoffs: sorted}
}

// Payoffs returns a copy of the payoffs in pay date order
func (l *List) Payoffs() []Payoff {
	return append([]Payoff(nil), l.payoffs...)
}

// Len returns the number of payoffs
func (l *List) Len() int { return len(l.payoffs) }

// PayDates returns the pay dates in order
func (l *List) PayDates() []float64 {
	dates := make([]float64, len(l.payoffs))
	for i, p := range l.payoffs {
		dates[i] = p.Pay()
	}
	return dates
}

// Scaled returns a new list with every payoff scaled by factor
func (l *List) Scaled(factor float64) *List {
	scaled := make([]Payoff, len(l.payoffs))
	for i, p := range l.payoffs {
		scaled[i] = p.Scaled(factor)
	}
	return &List{payoffs: scaled}
}

// Neg returns a new list with every payoff negated, turning a receiver leg
// into a payer leg.
func (l *List) Neg() *List {
	return l.Scaled(-1.0)
}

// Add returns a new list holding the payoffs of both lists
func (l *List) Add(other *List) *List {
	return NewList(append(l.Payoffs(), other.payoffs...)...)
}

// WithFixedRate returns a new list where every rate payoff carries the
// given fixed rate. Other payoffs are unchanged.
func (l *List) WithFixedRate(rate float64) *List {
	replaced := make([]Payoff, len(l.payoffs))
	for i, p := range l.payoffs {
		if rp, ok := p.(interface{ WithFixedRate(float64) Payoff }); ok {
			replaced[i] = rp.WithFixedRate(rate)
		} else {
			replaced[i] = p
		}
	}
	return &List{payoffs: replaced}
}

// Rows returns the structured records of all payoffs seen from the
// valuation date.
func (l *List) Rows(valuation float64) ([]Row, error) {
	rows := make([]Row, len(l.payoffs))
	for i, p := range l.payoffs {
		row, err := p.Row(valuation)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

// RateFlowsOption configures a rate flow builder
type RateFlowsOption func(*RatePayoff)

// WithForward attaches a forward curve to every period
func WithForward(forward ForwardCurve) RateFlowsOption {
	return func(p *RatePayoff) { p.Forward = forward }
}

// WithDayCount sets the accrual day count of every period
func WithDayCount(yf curve.YearFraction) RateFlowsOption {
	return func(p *RatePayoff) { p.DayCount = yf }
}

// WithFixingOffset sets the forward fixing offset of every period
func WithFixingOffset(offset float64) RateFlowsOption {
	return func(p *RatePayoff) { p.FixingOffset = offset }
}

// WithPayOffset shifts the effective pay date of every period
func WithPayOffset(offset float64) RateFlowsOption {
	return func(p *RatePayoff) { p.PayOffset = offset }
}

// WithCollar clamps the total rate of every period between floor and cap
func WithCollar(floor, cap float64) RateFlowsOption {
	return func(p *RatePayoff) {
		f, c := floor, cap
		p.Floor = &f
		p.Cap = &c
	}
}

// FixedFlows builds a list of fixed payoffs from paired pay dates and
// amounts.
func FixedFlows(payDates, amounts []float64) (*List, error) {
	if len(payDates) != len(amounts) {
		return nil, errors.Domainf("fixed flows require equal length input for dates and amounts: %d != %d",
			len(payDates), len(amounts))
	}
	payoffs := make([]Payoff, len(payDates))
	for i := range payDates {
		payoffs[i] = FixedPayoff{PayDate: payDates[i], Value: amounts[i]}
	}
	return NewList(payoffs...), nil
}

// RateFlows builds a list of rate payoffs over consecutive periods of the
// schedule, each paying at its period end. The schedule holds the period
// boundaries, so n+1 dates make n payoffs.
func RateFlows(schedule []float64, notional, fixedRate float64, opts ...RateFlowsOption) (*List, error) {
	if len(schedule) < 2 {
		return nil, errors.Domain("rate flows require at least two schedule dates")
	}
	payoffs := make([]Payoff, 0, len(schedule)-1)
	for i := 1; i < len(schedule); i++ {
		p := RatePayoff{
			PayDate:   schedule[i],
			Notional:  notional,
			FixedRate: fixedRate,
			Start:     schedule[i-1],
			End:       schedule[i],
		}
		for _, opt := range opts {
			opt(&p)
		}
		payoffs = append(payoffs, p)
	}
	return NewList(payoffs...), nil
}

// AmortizingFlows builds a bond-like list from a redemption plan: rate
// payoffs accrue on the outstanding notional of each period and each
// period's redemption is paid at its end.
func AmortizingFlows(schedule, redemptions []float64, fixedRate float64, opts ...RateFlowsOption) (*List, error) {
	if len(schedule) < 2 {
		return nil, errors.Domain("amortizing flows require at least two schedule dates")
	}
	if len(redemptions) != len(schedule)-1 {
		return nil, errors.Domainf("amortizing flows require one redemption per period: %d != %d",
			len(redemptions), len(schedule)-1)
	}
	outstanding := 0.0
	for _, r := range redemptions {
		outstanding += r
	}
	payoffs := make([]Payoff, 0, 2*(len(schedule)-1))
	for i := 1; i < len(schedule); i++ {
		p := RatePayoff{
			PayDate:   schedule[i],
			Notional:  outstanding,
			FixedRate: fixedRate,
			Start:     schedule[i-1],
			End:       schedule[i],
		}
		for _, opt := range opts {
			opt(&p)
		}
		payoffs = append(payoffs, p,
			FixedPayoff{PayDate: schedule[i], Value: redemptions[i-1]})
		outstanding -= redemptions[i-1]
	}
	return NewList(payoffs...), nil
}

// OptionFlows builds a list of option payoffs, one per expiry, each paying
// at its expiry.
func OptionFlows(expiries []float64, notional, strike float64, typ option.Type,
	formula option.Formula, forward, vol ValueCurve) (*List, error) {
	if len(expiries) == 0 {
		return nil, errors.Domain("option flows require at least one expiry")
	}
	payoffs := make([]Payoff, len(expiries))
	for i, e := range expiries {
		payoffs[i] = OptionPayoff{
			PayDate:  e,
			Notional: notional,
			Expiry:   e,
			Strike:   strike,
			Type:     typ,
			Formula:  formula,
			Forward:  forward,
			Vol:      vol,
		}
	}
	return NewList(payoffs...), nil
}
