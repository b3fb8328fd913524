/*
tiered.go - Progressive tiered calculator

PURPOSE:
  Bills production volume progressively across contiguous tiers, each at
  its own rate: the first 1000 tons at one rate, the next band at the
  next rate, and so on. Tiered billing is progressive, never
  all-or-nothing.

OVERFLOW SEMANTICS:
  If total volume exceeds the highest bounded tier and no unbounded tier
  exists, the excess volume is simply never billed. That is the
  contractual reading of a capped schedule, and it is covered by a
  regression test so it stays a decision rather than becoming a silent
  truncation bug.
*/
package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// calculateTiered walks the tiers in order, consuming volume until the
// record's volume or the tiers run out.
func calculateTiered(rec RoyaltyRecord, env calcEnv) (BaseCalculation, error) {
	tiers := env.cfg.TiersFor(rec.Mineral)
	if env.contract != nil && len(env.contract.Tiers) > 0 {
		tiers = env.contract.Tiers
	}
	if len(tiers) == 0 {
		return BaseCalculation{}, ErrMissingTiers
	}

	total := decimal.Zero
	remaining := rec.Volume
	var consumed []TierConsumption
	var lines []BreakdownLine
	var rules []string

	for _, tier := range tiers {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		volumeInTier := remaining
		if capacity := tier.Capacity(); capacity != nil && capacity.LessThan(remaining) {
			volumeInTier = *capacity
		}
		tierAmount := volumeInTier.Mul(tier.Rate)

		total = total.Add(tierAmount)
		remaining = remaining.Sub(volumeInTier)

		consumed = append(consumed, TierConsumption{
			Range:  tierRange(tier),
			Rate:   tier.Rate,
			Volume: volumeInTier,
			Amount: tierAmount,
		})
		lines = append(lines, BreakdownLine{
			Label:  fmt.Sprintf("Tier %s @ %s", tierRange(tier), tier.Rate),
			Amount: tierAmount,
		})
		rules = append(rules,
			fmt.Sprintf("%s tons @ %s = %s", volumeInTier, tier.Rate, tierAmount))
	}

	return BaseCalculation{
		Method:       MethodTiered,
		BaseAmount:   total,
		Tiers:        consumed,
		Lines:        lines,
		AppliedRules: rules,
	}, nil
}

func tierRange(t Tier) string {
	if t.To == nil {
		return fmt.Sprintf("%s - ∞", t.From)
	}
	return fmt.Sprintf("%s - %s", t.From, t.To)
}
