/*
interest.go - Late-payment interest accrual

PURPOSE:
  Accrues daily-compounded interest on the base amount once a record is
  late beyond the grace period:

    interestPeriod = daysLate - gracePeriod
    dailyRate      = annualRate / 365
    interest       = base x ((1 + dailyRate)^interestPeriod - 1)

  The annual rate is the disputed rate while a record is under dispute,
  the overdue rate otherwise. Penalties can apply during the grace
  period; interest cannot.
*/
package royalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// accrueInterest derives the interest block for a record.
func accrueInterest(rec RoyaltyRecord, baseAmount decimal.Decimal, eval time.Time, env calcEnv) InterestAccrual {
	daysLate := daysPast(rec.DueDate, eval)

	grace := env.cfg.GracePeriodDays
	if env.opts.GracePeriodDays > 0 {
		grace = env.opts.GracePeriodDays
	}

	if daysLate <= grace || rec.Status == StatusPaid {
		return InterestAccrual{
			DaysLate:        daysLate,
			GracePeriodDays: grace,
			AnnualRate:      decimal.Zero,
			DailyRate:       decimal.Zero,
			Amount:          decimal.Zero,
			AppliedRules: []string{
				fmt.Sprintf("No interest - within %d day grace period", grace),
			},
		}
	}

	period := daysLate - grace
	annualRate := env.cfg.Interest.Overdue
	if rec.Status == StatusDisputed {
		annualRate = env.cfg.Interest.Disputed
	}

	dailyRate := annualRate.Div(daysPerYear)
	growth := Dec(1).Add(dailyRate).Pow(decimal.NewFromInt(int64(period)))
	amount := baseAmount.Mul(growth.Sub(Dec(1)))

	return InterestAccrual{
		DaysLate:           daysLate,
		GracePeriodDays:    grace,
		InterestPeriodDays: period,
		AnnualRate:         annualRate,
		DailyRate:          dailyRate,
		Amount:             amount,
		AppliedRules: []string{
			fmt.Sprintf("%d days late (%d days beyond grace period)", daysLate, period),
			fmt.Sprintf("Annual interest rate: %s%%", annualRate.Mul(Dec(100)).StringFixed(1)),
			fmt.Sprintf("Interest amount: %s", amount.StringFixed(2)),
		},
	}
}
