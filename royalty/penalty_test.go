package royalty_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swazimin/royalty-engine/royalty"
)

// overdueInput builds a 100x10 fixed-method record due exactly daysPastDue
// days before the evaluation date.
func overdueInput(daysPastDue int) royalty.Input {
	eval := date(2025, time.June, 1)
	return royalty.Input{
		Record:         coalRecord(100, 10, eval.AddDate(0, 0, -daysPastDue)),
		EvaluationDate: eval,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestPenalty_BracketBoundaries(t *testing.T) {
	// GIVEN: Records at the exact bracket edges, compounding disabled so
	//        the amount is purely base x bracket rate
	// WHEN: Calculating at 0, 30, 31, 90 and 91 days past due
	// THEN: Day 30 is still early, day 31 is standard, day 90 is still
	//       standard, day 91 is severe

	cases := []struct {
		days    int
		bracket royalty.PenaltyBracket
		rate    decimal.Decimal
	}{
		{0, royalty.BracketNone, decimal.Zero},
		{1, royalty.BracketEarly, dec(0.01)},
		{30, royalty.BracketEarly, dec(0.01)},
		{31, royalty.BracketStandard, dec(0.02)},
		{90, royalty.BracketStandard, dec(0.02)},
		{91, royalty.BracketSevere, dec(0.05)},
	}

	engine := newEngine()
	for _, tc := range cases {
		in := overdueInput(tc.days)
		in.Options.Compound = boolPtr(false)

		result := calculate(t, engine, in)

		if result.Penalty.Bracket != tc.bracket {
			t.Errorf("day %d: expected bracket %s, got %s", tc.days, tc.bracket, result.Penalty.Bracket)
		}
		equalDec(t, tc.rate, result.Penalty.Rate, "bracket rate")
		equalDec(t, dec(1000).Mul(tc.rate), result.Penalty.Amount, "penalty amount")
		if result.Penalty.Compounded {
			t.Errorf("day %d: compounding was disabled", tc.days)
		}
	}
}

func TestPenalty_NotOverdue_NoBracket(t *testing.T) {
	// GIVEN: A record due in the future
	// WHEN: Calculating
	// THEN: No penalty bracket applies and the rule says so

	eval := date(2025, time.June, 1)
	result := calculate(t, newEngine(), royalty.Input{
		Record:         coalRecord(100, 10, eval.AddDate(0, 0, 10)),
		EvaluationDate: eval,
	})

	if result.Penalty.Bracket != royalty.BracketNone {
		t.Errorf("expected no bracket, got %s", result.Penalty.Bracket)
	}
	if result.Penalty.DaysPastDue != 0 {
		t.Errorf("future due dates must clamp to 0 days, got %d", result.Penalty.DaysPastDue)
	}
	if len(result.Penalty.AppliedRules) == 0 ||
		result.Penalty.AppliedRules[0] != "No penalties - payment not overdue" {
		t.Errorf("expected not-overdue rule, got %v", result.Penalty.AppliedRules)
	}
}

func TestPenalty_PaidRecord_NoPenalty(t *testing.T) {
	// GIVEN: A record 100 days past due but already marked paid
	// WHEN: Calculating
	// THEN: No penalty is assessed

	in := overdueInput(100)
	in.Record.Status = royalty.StatusPaid

	result := calculate(t, newEngine(), in)

	equalDec(t, decimal.Zero, result.Penalty.Amount, "penalty")
	if result.Penalty.Bracket != royalty.BracketNone {
		t.Errorf("paid records carry no penalty bracket, got %s", result.Penalty.Bracket)
	}
}

func TestPenalty_Compounding_TwoCompletePeriods(t *testing.T) {
	// GIVEN: A record 60 days past due with compounding enabled and a
	//        1% rate in the applicable bracket
	// WHEN: Calculating
	// THEN: penalty = base x (1.01)^2 - base (two complete 30-day periods)

	cfg := royalty.DefaultRateConfig()
	cfg.Penalties.Standard = dec(0.01)

	result := calculate(t, royalty.NewEngine(cfg), overdueInput(60))

	base := dec(1000)
	want := base.Mul(dec(1).Add(dec(0.01)).Pow(dec(2))).Sub(base)
	equalDec(t, want, result.Penalty.Amount, "compounded penalty")
	if !result.Penalty.Compounded {
		t.Errorf("expected the compounded flag")
	}
}

func TestPenalty_Compounding_SingleCompletePeriod(t *testing.T) {
	// GIVEN: A record 45 days past due under the default 2% standard rate
	// WHEN: Calculating with default compounding
	// THEN: Only one complete 30-day period has elapsed, so the amount
	//       equals the simple base x rate

	result := calculate(t, newEngine(), overdueInput(45))

	equalDec(t, dec(20), result.Penalty.Amount, "one-period penalty")
	if !result.Penalty.Compounded {
		t.Errorf("expected the compounded flag past 30 days")
	}
}

func TestPenalty_NoCompounding_InsideFirstPeriod(t *testing.T) {
	// GIVEN: A record 20 days past due with compounding enabled
	// WHEN: Calculating
	// THEN: Compounding only triggers past 30 days, so the flat early
	//       rate applies

	result := calculate(t, newEngine(), overdueInput(20))

	equalDec(t, dec(10), result.Penalty.Amount, "flat early penalty")
	if result.Penalty.Compounded {
		t.Errorf("compounding must not trigger at 20 days")
	}
}
