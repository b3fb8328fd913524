/*
penalty.go - Overdue-payment penalty assessment

PURPOSE:
  Recomputes the penalty from scratch on every call: days past due select
  a bracket, the bracket rate applies to the base amount, and past 30
  days the penalty optionally compounds monthly. There is no persistent
  penalty state - the same record evaluated on the same date always
  yields the same assessment.

BRACKETS (lower bound inclusive):
  1-30 days    early     1%
  31-90 days   standard  2%
  91+ days     severe    5%

  Day 30 is still "early"; day 31 is "standard". Day 90 is still
  "standard"; day 91 is "severe".

COMPOUNDING:
  When enabled and daysPastDue > 30:
    penalty = base x (1 + rate)^floor(daysPastDue / 30) - base
  i.e. the bracket rate compounds once per complete 30-day period.
*/
package royalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// assessPenalty derives the penalty block for a record.
func assessPenalty(rec RoyaltyRecord, baseAmount decimal.Decimal, eval time.Time, env calcEnv) PenaltyAssessment {
	days := daysPast(rec.DueDate, eval)

	if days == 0 || rec.Status == StatusPaid {
		return PenaltyAssessment{
			DaysPastDue:  days,
			Bracket:      BracketNone,
			Rate:         decimal.Zero,
			Amount:       decimal.Zero,
			AppliedRules: []string{"No penalties - payment not overdue"},
		}
	}

	var bracket PenaltyBracket
	var rate decimal.Decimal
	var description string

	switch {
	case days <= 30:
		bracket, rate, description = BracketEarly, env.cfg.Penalties.Early, "Early overdue penalty"
	case days <= 90:
		bracket, rate, description = BracketStandard, env.cfg.Penalties.Standard, "Standard overdue penalty"
	default:
		bracket, rate, description = BracketSevere, env.cfg.Penalties.Severe, "Severe overdue penalty"
	}

	compound := env.cfg.Penalties.Compound
	if env.opts.Compound != nil {
		compound = *env.opts.Compound
	}

	amount := baseAmount.Mul(rate)
	compounded := false
	if compound && days > 30 {
		periods := int64(days / 30)
		grown := baseAmount.Mul(Dec(1).Add(rate).Pow(decimal.NewFromInt(periods)))
		amount = grown.Sub(baseAmount)
		compounded = true
		description += " (compounded)"
	}

	return PenaltyAssessment{
		DaysPastDue: days,
		Bracket:     bracket,
		Rate:        rate,
		Amount:      amount,
		Compounded:  compounded,
		AppliedRules: []string{
			fmt.Sprintf("%d days overdue", days),
			fmt.Sprintf("%s: %s%%", description, rate.Mul(Dec(100)).StringFixed(1)),
			fmt.Sprintf("Penalty amount: %s", amount.StringFixed(2)),
		},
	}
}
