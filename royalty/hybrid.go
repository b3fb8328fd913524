/*
hybrid.go - Weighted-blend hybrid calculator

PURPOSE:
  Blends two or more of the other calculation methods on the same record:
  each component runs independently (with its field overrides merged onto
  the record), its base amount is scaled by the component weight, and the
  weighted amounts are summed.

WEIGHT SEMANTICS:
  Weights are NOT normalized and need not sum to 1. A {fixed 0.6,
  ad_valorem 0.4} blend and a {fixed 0.6, ad_valorem 0.6} blend are both
  legal; the second simply owes more. Callers own weight semantics.

COMPONENT PRECEDENCE:
  Per-call Options.Hybrid > contract params > RateConfig default template
  (fixed 60% + ad valorem 40%).
*/
package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// calculateHybrid runs each component through the dispatcher and sums the
// weighted contributions. Components cannot themselves be hybrid.
func calculateHybrid(rec RoyaltyRecord, env calcEnv) (BaseCalculation, error) {
	components := env.cfg.DefaultHybrid
	if env.contract != nil && len(env.contract.Hybrid) > 0 {
		components = env.contract.Hybrid
	}
	if len(env.opts.Hybrid) > 0 {
		components = env.opts.Hybrid
	}
	if len(components) == 0 {
		return BaseCalculation{}, ErrMissingHybrid
	}

	total := decimal.Zero
	var contributions []HybridContribution
	var lines []BreakdownLine
	var rules []string

	for _, component := range components {
		if component.Method == MethodHybrid {
			return BaseCalculation{}, ErrNestedHybrid
		}

		sub, err := dispatch(component.Method, component.Overrides.Apply(rec), env)
		if err != nil {
			return BaseCalculation{}, err
		}

		weighted := sub.BaseAmount.Mul(component.Weight)
		total = total.Add(weighted)

		subCopy := sub
		contributions = append(contributions, HybridContribution{
			Method:      component.Method,
			Weight:      component.Weight,
			Amount:      weighted,
			Calculation: &subCopy,
		})
		lines = append(lines, BreakdownLine{
			Label:  fmt.Sprintf("%s Component", component.Method),
			Amount: weighted,
		})
		rules = append(rules, fmt.Sprintf("%s (%s%%): %s",
			component.Method,
			component.Weight.Mul(Dec(100)),
			weighted.StringFixed(2)))
	}

	return BaseCalculation{
		Method:       MethodHybrid,
		BaseAmount:   total,
		Components:   contributions,
		Lines:        lines,
		AppliedRules: rules,
	}, nil
}
