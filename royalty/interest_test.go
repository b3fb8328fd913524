package royalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/swazimin/royalty-engine/royalty"
)

func TestInterest_GraceBoundary(t *testing.T) {
	// GIVEN: A record exactly at the 60-day grace boundary
	// WHEN: Calculating at 60 and at 61 days late
	// THEN: Day 60 accrues nothing; day 61 accrues one day of interest

	atBoundary := calculate(t, newEngine(), overdueInput(60))
	equalDec(t, decimal.Zero, atBoundary.Interest.Amount, "interest at day 60")

	pastBoundary := calculate(t, newEngine(), overdueInput(61))
	if pastBoundary.Interest.InterestPeriodDays != 1 {
		t.Errorf("expected 1 interest day at daysLate=61, got %d",
			pastBoundary.Interest.InterestPeriodDays)
	}

	base := dec(1000)
	dailyRate := dec(0.15).Div(dec(365))
	want := base.Mul(dec(1).Add(dailyRate).Pow(dec(1)).Sub(dec(1)))
	equalDec(t, want, pastBoundary.Interest.Amount, "one day of interest")
}

func TestInterest_DailyCompounding(t *testing.T) {
	// GIVEN: A record 90 days late (30 days beyond grace)
	// WHEN: Calculating
	// THEN: interest = base x ((1 + 0.15/365)^30 - 1)

	result := calculate(t, newEngine(), overdueInput(90))

	base := dec(1000)
	dailyRate := dec(0.15).Div(dec(365))
	want := base.Mul(dec(1).Add(dailyRate).Pow(dec(30)).Sub(dec(1)))
	equalDec(t, want, result.Interest.Amount, "compounded interest")
	if result.Interest.InterestPeriodDays != 30 {
		t.Errorf("expected 30 interest days, got %d", result.Interest.InterestPeriodDays)
	}
}

func TestInterest_DisputedRecord_ReducedRate(t *testing.T) {
	// GIVEN: A disputed record 90 days late
	// WHEN: Calculating
	// THEN: The 8% disputed rate applies instead of the 15% overdue rate

	in := overdueInput(90)
	in.Record.Status = royalty.StatusDisputed

	result := calculate(t, newEngine(), in)

	equalDec(t, dec(0.08), result.Interest.AnnualRate, "annual rate")
}

func TestInterest_PaidRecord_NoAccrual(t *testing.T) {
	// GIVEN: A paid record far past the grace period
	// WHEN: Calculating
	// THEN: No interest accrues

	in := overdueInput(200)
	in.Record.Status = royalty.StatusPaid

	result := calculate(t, newEngine(), in)

	equalDec(t, decimal.Zero, result.Interest.Amount, "interest")
}

func TestInterest_GracePeriodOverride(t *testing.T) {
	// GIVEN: A per-calculation grace override of 10 days
	// WHEN: Calculating at 15 days late
	// THEN: Interest accrues for 5 days even though the default grace
	//       period would still cover the record

	in := overdueInput(15)
	in.Options.GracePeriodDays = 10

	result := calculate(t, newEngine(), in)

	if result.Interest.GracePeriodDays != 10 {
		t.Errorf("expected overridden grace of 10, got %d", result.Interest.GracePeriodDays)
	}
	if result.Interest.InterestPeriodDays != 5 {
		t.Errorf("expected 5 interest days, got %d", result.Interest.InterestPeriodDays)
	}
	if result.Interest.Amount.IsZero() {
		t.Errorf("expected accrued interest past the overridden grace period")
	}
}
