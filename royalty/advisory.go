/*
advisory.go - Configuration-time helpers

PURPOSE:
  Pre-flight checks and guidance that run before any record is assessed:

  ValidateParams: structural checks on contract calculation params for a
  given method (positive rates, ordered contiguous tiers, sane bounds).
  Findings, not errors - an administrator reviews them when capturing a
  contract, long before calculation time.

  SuggestMethod: the advisory mapping from mineral type to the
  calculation method usually written into contracts for it.
*/
package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PARAMETER VALIDATION
// =============================================================================

// ValidateParams checks contract params for structural problems relevant
// to the given method. An empty slice means the params are usable.
func ValidateParams(method Method, params *ContractParams) []Finding {
	var findings []Finding
	if params == nil {
		return findings
	}

	add := func(code, format string, args ...any) {
		findings = append(findings, Finding{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	switch method {
	case MethodTiered:
		prev := (*Tier)(nil)
		for i, tier := range params.Tiers {
			if tier.Rate.LessThanOrEqual(decimal.Zero) {
				add("tier_rate", "Tier %d rate must be positive", i+1)
			}
			if tier.From.IsNegative() {
				add("tier_from", "Tier %d 'from' value cannot be negative", i+1)
			}
			if tier.To != nil && tier.To.LessThanOrEqual(tier.From) {
				add("tier_bounds", "Tier %d upper bound must exceed lower bound", i+1)
			}
			if prev != nil {
				if prev.To == nil {
					add("tier_order", "Tier %d follows an unbounded tier", i+1)
				} else if !tier.From.GreaterThan(*prev.To) {
					add("tier_overlap", "Tier %d overlaps the previous tier", i+1)
				}
			}
			tierCopy := tier
			prev = &tierCopy
		}

	case MethodSlidingScale:
		if len(params.Scales) == 0 {
			add("scales_missing", "Sliding scale requires at least one price band")
		}
		for i, band := range params.Scales {
			if band.Rate.LessThanOrEqual(decimal.Zero) {
				add("scale_rate", "Band %d rate must be positive", i+1)
			}
			if band.PriceTo != nil && band.PriceTo.LessThan(band.PriceFrom) {
				add("scale_bounds", "Band %d price range is inverted", i+1)
			}
		}
		if params.BasePrice != nil && params.BasePrice.LessThanOrEqual(decimal.Zero) {
			add("base_price", "Base price must be positive")
		}

	case MethodHybrid:
		for i, component := range params.Hybrid {
			if component.Method == MethodHybrid {
				add("hybrid_nested", "Component %d cannot itself be hybrid", i+1)
			} else if _, err := ParseMethod(string(component.Method)); err != nil {
				add("hybrid_method", "Component %d names an unknown method", i+1)
			}
			if component.Weight.LessThanOrEqual(decimal.Zero) || component.Weight.GreaterThan(Dec(1)) {
				add("hybrid_weight", "Component %d weight must be in (0, 1]", i+1)
			}
		}
	}

	return findings
}

// =============================================================================
// METHOD SUGGESTION
// =============================================================================

// MethodSuggestion pairs an advisory method with its rationale.
type MethodSuggestion struct {
	Method Method
	Reason string
}

// SuggestMethod returns the calculation method usually contracted for a
// mineral type. Purely advisory; records may configure any method.
func SuggestMethod(mineral Mineral) MethodSuggestion {
	switch mineral {
	case MineralCoal:
		return MethodSuggestion{MethodSlidingScale, "Variable market prices"}
	case MineralIronOre:
		return MethodSuggestion{MethodAdValorem, "High value commodity"}
	case MineralGold:
		return MethodSuggestion{MethodAdValorem, "Precious metal with volatile prices"}
	case MineralDiamond:
		return MethodSuggestion{MethodAdValorem, "High value precious stone"}
	case MineralQuarriedStone:
		return MethodSuggestion{MethodFixed, "Stable low-value commodity"}
	case MineralGravel:
		return MethodSuggestion{MethodFixed, "Standard construction material"}
	case MineralSand:
		return MethodSuggestion{MethodFixed, "Basic construction material"}
	case MineralLimestone:
		return MethodSuggestion{MethodTiered, "Volume-based production"}
	default:
		return MethodSuggestion{MethodFixed, "Default method for unknown mineral type"}
	}
}
