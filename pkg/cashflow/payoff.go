// Package cashflow provides the payoff model. A payoff is a single payment
// with a pay date and an amount that may depend on curves fixed at
// valuation time. Lists of payoffs describe whole legs and products.
package cashflow

import (
	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/option"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// ForwardCurve supplies simply compounded forward rates. *rate.Curve
// satisfies it.
type ForwardCurve interface {
	CashRate(start, end float64) (float64, error)
}

// ValueCurve supplies a plain curve value, used for forward prices and
// volatilities. *curve.Curve satisfies it.
type ValueCurve interface {
	Value(t float64) (float64, error)
}

// Row is the structured record of a single payoff evaluation
type Row struct {
	Kind        string
	Pay         float64
	Notional    float64
	FixedRate   float64
	ForwardRate float64
	Start       float64
	End         float64
	Tau         float64
	Strike      float64
	Amount      float64
}

// Payoff is a single payment. Amount may depend on the valuation date for
// payoffs with optionality, deterministic payoffs ignore it.
type Payoff interface {
	Pay() float64
	Amount(valuation float64) (float64, error)
	Scaled(factor float64) Payoff
	Row(valuation float64) (Row, error)
}

// FixedPayoff pays a fixed amount on the pay date
type FixedPayoff struct {
	PayDate float64
	Value   float64
}

// Pay returns the pay date
func (p FixedPayoff) Pay() float64 { return p.PayDate }

// Amount returns the fixed amount
func (p FixedPayoff) Amount(valuation float64) (float64, error) {
	return p.Value, nil
}

// Scaled returns the payoff with the amount scaled by factor
func (p FixedPayoff) Scaled(factor float64) Payoff {
	p.Value *= factor
	return p
}

// Row returns the structured record of the payoff
func (p FixedPayoff) Row(valuation float64) (Row, error) {
	return Row{Kind: "fixed", Pay: p.PayDate, Amount: p.Value}, nil
}

// RatePayoff pays interest over an accrual period. The rate is the fixed
// rate plus, when a forward curve is attached, the forward rate fixed at
// the period start less the fixing offset. The effective pay date is the
// nominal date shifted by the pay offset. Cap and floor, when set, clamp
// the total rate.
type RatePayoff struct {
	PayDate      float64
	Notional     float64
	FixedRate    float64
	Start        float64
	End          float64
	FixingOffset float64
	PayOffset    float64
	DayCount     curve.YearFraction
	Forward      ForwardCurve
	Cap          *float64
	Floor        *float64
}

// Pay returns the effective pay date
func (p RatePayoff) Pay() float64 { return p.PayDate + p.PayOffset }

func (p RatePayoff) dayCount() curve.YearFraction {
	if p.DayCount == nil {
		return curve.Diff
	}
	return p.DayCount
}

// rate returns the total accrual rate fixed at valuation
func (p RatePayoff) rate() (fixed, forward float64, err error) {
	fixed = p.FixedRate
	if p.Forward != nil {
		forward, err = p.Forward.CashRate(p.Start-p.FixingOffset, p.End-p.FixingOffset)
		if err != nil {
			return 0, 0, err
		}
	}
	return fixed, forward, nil
}

func (p RatePayoff) collared(rate float64) float64 {
	if p.Floor != nil && rate < *p.Floor {
		rate = *p.Floor
	}
	if p.Cap != nil && rate > *p.Cap {
		rate = *p.Cap
	}
	return rate
}

// Amount returns notional times collared rate times accrual fraction
func (p RatePayoff) Amount(valuation float64) (float64, error) {
	if p.End < p.Start {
		return 0, errors.Domainf("accrual period end %g before start %g", p.End, p.Start)
	}
	fixed, forward, err := p.rate()
	if err != nil {
		return 0, err
	}
	tau := p.dayCount()(p.Start, p.End)
	return p.Notional * p.collared(fixed+forward) * tau, nil
}

// AccruedInterest returns the interest accrued from the period start up to
// the valuation date, zero outside the accrual period.
func (p RatePayoff) AccruedInterest(valuation float64) (float64, error) {
	if valuation <= p.Start || p.End <= p.Start {
		return 0, nil
	}
	amount, err := p.Amount(valuation)
	if err != nil {
		return 0, err
	}
	if valuation >= p.End {
		return amount, nil
	}
	yf := p.dayCount()
	return amount * yf(p.Start, valuation) / yf(p.Start, p.End), nil
}

// Scaled returns the payoff with the notional scaled by factor
func (p RatePayoff) Scaled(factor float64) Payoff {
	p.Notional *= factor
	return p
}

// WithFixedRate returns the payoff with the fixed rate replaced
func (p RatePayoff) WithFixedRate(rate float64) Payoff {
	p.FixedRate = rate
	return p
}

// Row returns the structured record of the payoff
func (p RatePayoff) Row(valuation float64) (Row, error) {
	fixed, forward, err := p.rate()
	if err != nil {
		return Row{}, err
	}
	amount, err := p.Amount(valuation)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Kind:        "rate",
		Pay:         p.Pay(),
		Notional:    p.Notional,
		FixedRate:   fixed,
		ForwardRate: forward,
		Start:       p.Start,
		End:         p.End,
		Tau:         p.dayCount()(p.Start, p.End),
		Amount:      amount,
	}, nil
}

// OptionPayoff pays the forward value of a European option on the pay
// date. Forward and volatility are read off the attached curves at expiry.
type OptionPayoff struct {
	PayDate  float64
	Notional float64
	Expiry   float64
	Strike   float64
	Type     option.Type
	Formula  option.Formula
	Forward  ValueCurve
	Vol      ValueCurve
}

// Pay returns the pay date
func (p OptionPayoff) Pay() float64 { return p.PayDate }

// Amount returns the notional times the option forward value seen from the
// valuation date. At expiry the intrinsic value is paid, valuation after
// expiry is a caller error.
func (p OptionPayoff) Amount(valuation float64) (float64, error) {
	if p.Forward == nil {
		return 0, errors.Domain("option payoff requires a forward curve")
	}
	if valuation > p.Expiry {
		return 0, errors.Domainf("option expired at %g, valued at %g", p.Expiry, valuation)
	}
	formula := p.Formula
	if formula == nil {
		formula = option.Intrinsic{}
	}
	forward, err := p.Forward.Value(p.Expiry)
	if err != nil {
		return 0, err
	}
	tau := p.Expiry - valuation
	vol := 0.0
	if p.Vol != nil {
		vol, err = p.Vol.Value(p.Expiry)
		if err != nil {
			return 0, err
		}
	} else if _, ok := formula.(option.Intrinsic); !ok {
		return 0, errors.Domainf("option payoff requires a volatility curve for the %s formula", formula.Name())
	}
	v, err := formula.Price(forward, p.Strike, tau, vol, p.Type)
	if err != nil {
		return 0, err
	}
	return p.Notional * v, nil
}

// Scaled returns the payoff with the notional scaled by factor
func (p OptionPayoff) Scaled(factor float64) Payoff {
	p.Notional *= factor
	return p
}

// Row returns the structured record of the payoff
func (p OptionPayoff) Row(valuation float64) (Row, error) {
	amount, err := p.Amount(valuation)
	if err != nil {
		return Row{}, err
	}
	forward, err := p.Forward.Value(p.Expiry)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Kind:        p.Type.String(),
		Pay:         p.PayDate,
		Notional:    p.Notional,
		ForwardRate: forward,
		End:         p.Expiry,
		Strike:      p.Strike,
		Amount:      amount,
	}, nil
}
