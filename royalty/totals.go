/*
totals.go - Totals assembly and result validation

PURPOSE:
  Sums the pipeline blocks into the final breakdown and applies the
  validation rules. Validation findings are data, not exceptions: a
  negative total marks the result invalid but the caller still receives
  the complete breakdown for review.

RULES:
  total < 0                          -> error finding, IsValid = false
  total > high-value threshold       -> warning (unusually high)
  base  < per-mineral minimum        -> warning (below minimum)
*/
package royalty

import "fmt"

// finalize computes the breakdown, total, and validation findings on a
// freshly assembled result.
func finalize(result *CalculationResult, rec RoyaltyRecord, cfg RateConfig) {
	base := result.Base.BaseAmount
	penalties := result.Penalty.Amount
	interest := result.Interest.Amount
	adjustments := result.Adjustment.Amount

	total := base.Add(penalties).Add(interest).Add(adjustments)

	result.Breakdown = TotalsBreakdown{
		Base:        base,
		Penalties:   penalties,
		Interest:    interest,
		Adjustments: adjustments,
		Total:       total,
	}
	result.Total = total
	result.IsValid = true

	if total.IsNegative() {
		result.IsValid = false
		result.Errors = append(result.Errors, Finding{
			Code:    FindingNegativeTotal,
			Message: "Total payment cannot be negative",
		})
	}

	if total.GreaterThan(cfg.HighValueThreshold) {
		result.Warnings = append(result.Warnings, Finding{
			Code:    FindingHighValue,
			Message: "Payment amount is unusually high",
		})
	}

	if base.LessThan(cfg.MinimumPayment(rec.Mineral)) {
		result.Warnings = append(result.Warnings, Finding{
			Code:    FindingBelowMinimum,
			Message: fmt.Sprintf("Payment below minimum threshold for %s", rec.Mineral),
		})
	}
}
