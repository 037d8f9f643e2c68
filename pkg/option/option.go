// Package option provides closed form forward valuation formulas for
// European vanilla and digital options. All formulas price on forward
// terms, discounting and notionals are the caller's concern.
package option

import (
	"math"

	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Type identifies the payoff profile of an option
type Type int

const (
	// Call pays max(S - K, 0)
	Call Type = iota
	// Put pays max(K - S, 0)
	Put
	// DigitalCall pays 1 if S > K
	DigitalCall
	// DigitalPut pays 1 if S < K
	DigitalPut
)

// String returns the option type name
func (t Type) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	case DigitalCall:
		return "digital-call"
	case DigitalPut:
		return "digital-put"
	}
	return "unknown"
}

// Formula prices an option on forward terms. Implementations return the
// undiscounted expected payoff for a unit notional.
type Formula interface {
	Price(forward, strike, tau, vol float64, typ Type) (float64, error)
	Name() string
}

// normalCDF returns the standard normal cumulative distribution at x
func normalCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normalPDF returns the standard normal density at x
func normalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2.0*math.Pi)
}

func validate(tau, vol float64) error {
	if tau < 0 {
		return errors.Domainf("option expiry %g before valuation", tau)
	}
	if vol < 0 {
		return errors.Domainf("negative volatility %g", vol)
	}
	return nil
}

// intrinsic returns the payoff at expiry, the vanishing volatility and
// vanishing time limit of every formula.
func intrinsic(forward, strike float64, typ Type) (float64, error) {
	switch typ {
	case Call:
		return math.Max(forward-strike, 0.0), nil
	case Put:
		return math.Max(strike-forward, 0.0), nil
	case DigitalCall:
		if forward > strike {
			return 1.0, nil
		}
		return 0.0, nil
	case DigitalPut:
		if forward < strike {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return 0, errors.Domainf("unknown option type %d", int(typ))
}

// Intrinsic prices every option at its payoff, ignoring volatility
type Intrinsic struct{}

// Name returns the formula name
func (Intrinsic) Name() string { return "intrinsic" }

// Price returns the intrinsic value of the option
func (Intrinsic) Price(forward, strike, tau, vol float64, typ Type) (float64, error) {
	if err := validate(tau, vol); err != nil {
		return 0, err
	}
	return intrinsic(forward, strike, typ)
}

// Bachelier prices under a normal forward distribution. Negative forwards
// and strikes are valid inputs.
type Bachelier struct{}

// Name returns the formula name
func (Bachelier) Name() string { return "bachelier" }

// Price returns the normal model forward value of the option
func (Bachelier) Price(forward, strike, tau, vol float64, typ Type) (float64, error) {
	if err := validate(tau, vol); err != nil {
		return 0, err
	}
	stdDev := vol * math.Sqrt(tau)
	if stdDev == 0 {
		return intrinsic(forward, strike, typ)
	}
	d := (forward - strike) / stdDev
	switch typ {
	case Call:
		return (forward-strike)*normalCDF(d) + stdDev*normalPDF(d), nil
	case Put:
		call := (forward-strike)*normalCDF(d) + stdDev*normalPDF(d)
		// put call parity on forward terms
		return call - (forward - strike), nil
	case DigitalCall:
		return normalCDF(d), nil
	case DigitalPut:
		return 1.0 - normalCDF(d), nil
	}
	return 0, errors.Domainf("unknown option type %d", int(typ))
}

// Black76 prices under a lognormal forward distribution. Forward and strike
// must be positive.
type Black76 struct{}

// Name returns the formula name
func (Black76) Name() string { return "black76" }

// Price returns the lognormal model forward value of the option
func (Black76) Price(forward, strike, tau, vol float64, typ Type) (float64, error) {
	if err := validate(tau, vol); err != nil {
		return 0, err
	}
	if forward <= 0 {
		return 0, errors.Domainf("lognormal model requires a positive forward, got %g", forward)
	}
	if strike <= 0 {
		return 0, errors.Domainf("lognormal model requires a positive strike, got %g", strike)
	}
	stdDev := vol * math.Sqrt(tau)
	if stdDev == 0 {
		return intrinsic(forward, strike, typ)
	}
	d1 := (math.Log(forward/strike) + 0.5*stdDev*stdDev) / stdDev
	d2 := d1 - stdDev
	switch typ {
	case Call:
		return forward*normalCDF(d1) - strike*normalCDF(d2), nil
	case Put:
		return strike*normalCDF(-d2) - forward*normalCDF(-d1), nil
	case DigitalCall:
		return normalCDF(d2), nil
	case DigitalPut:
		return normalCDF(-d2), nil
	}
	return 0, errors.Domainf("unknown option type %d", int(typ))
}

// Displaced prices under a shifted lognormal forward distribution, allowing
// forwards down to the negative displacement.
type Displaced struct {
	// Displacement shifts forward and strike before the lognormal formula
	Displacement float64
}

// Name returns the formula name
func (d Displaced) Name() string { return "displaced" }

// Price returns the shifted lognormal model forward value of the option
func (d Displaced) Price(forward, strike, tau, vol float64, typ Type) (float64, error) {
	if err := validate(tau, vol); err != nil {
		return 0, err
	}
	shiftedForward := forward + d.Displacement
	shiftedStrike := strike + d.Displacement
	if shiftedForward <= 0 {
		return 0, errors.Domainf("displaced model requires forward %g above displacement %g",
			forward, -d.Displacement)
	}
	if shiftedStrike <= 0 {
		return 0, errors.Domainf("displaced model requires strike %g above displacement %g",
			strike, -d.Displacement)
	}
	return Black76{}.Price(shiftedForward, shiftedStrike, tau, vol, typ)
}

// ByName resolves a formula from its configured name. The displacement
// applies to the displaced model only.
func ByName(name string, displacement float64) (Formula, error) {
	switch name {
	case "", "intrinsic":
		return Intrinsic{}, nil
	case "bachelier", "normal":
		return Bachelier{}, nil
	case "black76", "lognormal":
		return Black76{}, nil
	case "displaced", "displaced-lognormal":
		return Displaced{Displacement: displacement}, nil
	}
	return nil, errors.Domainf("unknown option pricing formula %q", name)
}
