/*
methods.go - Method dispatcher and the fixed calculator

PURPOSE:
  Routes a record to exactly one of the six method calculators. The
  method set is closed: the switch below is exhaustive over the Method
  constants and anything else is an UnknownMethodError. Adding a method
  means adding a constant, a case, and a calculator - the compiler and
  the default case keep the two lists honest.

DISPATCH ORDER OF PRECEDENCE (per-method configuration):
  1. Per-call Options (hybrid components only)
  2. Contract calculation params
  3. Per-mineral defaults from RateConfig

SEE ALSO:
  - tiered.go, sliding.go, valuation.go, hybrid.go: The other calculators
*/
package royalty

import "fmt"

// ParseMethod validates a method string against the closed set.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodFixed, MethodTiered, MethodSlidingScale,
		MethodAdValorem, MethodPercentage, MethodHybrid:
		return Method(s), nil
	case "":
		return MethodFixed, nil
	default:
		return "", &UnknownMethodError{Method: s}
	}
}

// dispatch routes to exactly one method calculator.
func dispatch(method Method, rec RoyaltyRecord, env calcEnv) (BaseCalculation, error) {
	switch method {
	case MethodFixed:
		return calculateFixed(rec), nil
	case MethodTiered:
		return calculateTiered(rec, env)
	case MethodSlidingScale:
		return calculateSlidingScale(rec, env)
	case MethodAdValorem:
		return calculateAdValorem(rec, env), nil
	case MethodPercentage:
		return calculatePercentage(rec, env), nil
	case MethodHybrid:
		return calculateHybrid(rec, env)
	default:
		return BaseCalculation{}, &UnknownMethodError{Method: string(method)}
	}
}

// =============================================================================
// FIXED CALCULATOR
// =============================================================================

// calculateFixed computes volume x tariff. Non-negativity of the inputs
// is the caller's contract; the validator flags suspicious outcomes
// downstream rather than correcting them here.
func calculateFixed(rec RoyaltyRecord) BaseCalculation {
	amount := rec.Volume.Mul(rec.Tariff)

	return BaseCalculation{
		Method:     MethodFixed,
		BaseAmount: amount,
		Lines: []BreakdownLine{
			{Label: "Volume (tons)", Amount: rec.Volume},
			{Label: "Rate (per ton)", Amount: rec.Tariff},
			{Label: "Base Amount", Amount: amount},
		},
		AppliedRules: []string{
			fmt.Sprintf("Fixed rate: %s per unit", rec.Tariff),
		},
	}
}
