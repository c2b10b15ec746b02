package montecarlo

import (
	"fmt"
	"math"

	"PriceSentinel/internal/model"
)

// SimulatePath generates one GBM price path over horizon steps:
//
//	price_i = price_{i-1} * exp((drift - 0.5*vol^2) + vol*z_i)
//
// with one standard-normal draw z_i per step taken from rng. The returned
// path has horizon+1 elements and starts at startPrice.
func SimulatePath(startPrice, drift, volatility float64, horizon int, rng RandomSource) (model.SimulatedPath, error) {
	if err := validatePathInputs(startPrice, drift, volatility, horizon); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, model.Invalid("rng", nil, "must not be nil")
	}
	return simulate(startPrice, drift, volatility, horizon, rng)
}

func validatePathInputs(startPrice, drift, volatility float64, horizon int) error {
	if !(startPrice > 0) || math.IsInf(startPrice, 0) {
		return model.Invalid("startPrice", startPrice, "must be positive and finite")
	}
	if math.IsNaN(drift) || math.IsInf(drift, 0) {
		return model.Invalid("drift", drift, "must be finite")
	}
	if !(volatility >= 0) || math.IsInf(volatility, 0) {
		return model.Invalid("volatility", volatility, "must be non-negative and finite")
	}
	if horizon < 0 {
		return model.Invalid("horizon", horizon, "must be >= 0")
	}
	return nil
}

// simulate assumes validated inputs. It fails if a step overflows to +Inf or
// underflows to 0, since every price on a path must stay positive and finite.
func simulate(startPrice, drift, volatility float64, horizon int, rng RandomSource) (model.SimulatedPath, error) {
	path := make(model.SimulatedPath, horizon+1)
	path[0] = startPrice

	// Constant per path.
	driftTerm := drift - 0.5*volatility*volatility

	for i := 1; i <= horizon; i++ {
		z := rng.NormFloat64()
		p := path[i-1] * math.Exp(driftTerm+volatility*z)
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, model.Invalid("horizon", horizon,
				fmt.Sprintf("simulated price left float64 range at step %d (drift %g, volatility %g)", i, drift, volatility))
		}
		path[i] = p
	}
	return path, nil
}
