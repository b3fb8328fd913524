/*
sliding.go - Sliding-scale calculator

PURPOSE:
  Derives the royalty rate from the commodity market: the current price
  selects a band (first match in list order, bounds inclusive), then the
  band's nominal rate is scaled by currentPrice / basePrice so the rate
  slides continuously with the market inside the band.

FALLBACK:
  If no band contains the current price, the first band's rate applies.
  That is a documented fallback, not an error - contracts usually leave
  a gap only below the first band, and the lowest rate is the
  conservative choice there.
*/
package royalty

import "fmt"

// calculateSlidingScale applies the price-indexed rate to volume.
func calculateSlidingScale(rec RoyaltyRecord, env calcEnv) (BaseCalculation, error) {
	scales := env.cfg.DefaultScales
	if env.contract != nil && len(env.contract.Scales) > 0 {
		scales = env.contract.Scales
	}
	if len(scales) == 0 {
		return BaseCalculation{}, ErrMissingScales
	}

	price := env.priceFor(rec.Mineral)

	// First matching band wins; at a shared boundary the earlier band
	// takes precedence.
	band := scales[0]
	matched := false
	for _, s := range scales {
		if s.Contains(price.Current) {
			band = s
			matched = true
			break
		}
	}

	basePrice := price.Baseline
	if env.contract != nil && env.contract.BasePrice != nil {
		basePrice = *env.contract.BasePrice
	}

	factor := price.Current.Div(basePrice)
	adjustedRate := band.Rate.Mul(factor)
	amount := rec.Volume.Mul(adjustedRate)

	detail := &ScaleDetail{
		BandRate:         band.Rate,
		CurrentPrice:     price.Current,
		BasePrice:        basePrice,
		AdjustmentFactor: factor,
		AdjustedRate:     adjustedRate,
		PriceUnit:        price.Unit,
		BandMatched:      matched,
	}

	adjustmentPct := factor.Sub(Dec(1)).Mul(Dec(100))
	rules := []string{
		fmt.Sprintf("Base rate: %s", band.Rate),
		fmt.Sprintf("Current price: %s %s", price.Current, price.Unit),
		fmt.Sprintf("Adjustment factor: %s", factor.StringFixed(3)),
		fmt.Sprintf("Adjusted rate: %s", adjustedRate.StringFixed(2)),
	}
	if !matched {
		rules = append(rules, "No price band matched - first band rate applied")
	}

	return BaseCalculation{
		Method:     MethodSlidingScale,
		BaseAmount: amount,
		Scale:      detail,
		Lines: []BreakdownLine{
			{Label: "Volume", Amount: rec.Volume},
			{Label: "Base Rate", Amount: band.Rate},
			{Label: "Price Adjustment %", Amount: adjustmentPct},
			{Label: "Final Rate", Amount: adjustedRate},
			{Label: "Base Amount", Amount: amount},
		},
		AppliedRules: rules,
	}, nil
}
