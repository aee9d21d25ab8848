package engine

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
)

// approachingLimitRatio is the credit utilization that triggers a warning.
var approachingLimitRatio = decimal.NewFromFloat(0.8)

// AnomalyDetector scans day-record series for the first balance crossing of
// each kind. All scans are single-pass, left to right, stopping at the first
// match: later and deeper crossings are not reported.
type AnomalyDetector struct {
	idGen IDGenerator
}

// NewAnomalyDetector creates a new AnomalyDetector.
func NewAnomalyDetector(idGen IDGenerator) *AnomalyDetector {
	return &AnomalyDetector{idGen: idGen}
}

// FindFirstNegative returns the first day the account's closing balance
// drops below zero, or nil when it never does.
func (d *AnomalyDetector) FindFirstNegative(account domain.Account, days []domain.DayRecord) *domain.Anomaly {
	for i := range days {
		acct := days[i].Account(account.Name)
		if acct == nil {
			continue
		}
		if acct.Closing.IsNegative() {
			return &domain.Anomaly{
				ID:            d.idGen.Generate(),
				AccountName:   account.Name,
				Kind:          domain.AnomalyOverdraft,
				Date:          days[i].Date,
				BalanceBefore: acct.Opening,
				BalanceAfter:  acct.Closing,
			}
		}
	}
	return nil
}

// FindFirstCreditOverpayment returns the first day a credit balance crosses
// from owing (>= 0) to negative, meaning the customer paid back more than
// was owed. Nil when no such crossing exists.
func (d *AnomalyDetector) FindFirstCreditOverpayment(account domain.Account, days []domain.DayRecord) *domain.Anomaly {
	for i := range days {
		acct := days[i].Account(account.Name)
		if acct == nil {
			continue
		}
		if !acct.Opening.IsNegative() && acct.Closing.IsNegative() {
			return &domain.Anomaly{
				ID:            d.idGen.Generate(),
				AccountName:   account.Name,
				Kind:          domain.AnomalyOverpayment,
				Date:          days[i].Date,
				BalanceBefore: acct.Opening,
				BalanceAfter:  acct.Closing,
			}
		}
	}
	return nil
}

// FindApproachingLimit returns the first day a credit balance reaches 80%
// of the account's configured limit, or nil when the limit is unset or
// never approached.
func (d *AnomalyDetector) FindApproachingLimit(account domain.Account, days []domain.DayRecord) *domain.Anomaly {
	if !account.CreditLimit.IsPositive() {
		return nil
	}
	threshold := account.CreditLimit.Mul(approachingLimitRatio)

	for i := range days {
		acct := days[i].Account(account.Name)
		if acct == nil {
			continue
		}
		if acct.Closing.GreaterThanOrEqual(threshold) {
			return &domain.Anomaly{
				ID:            d.idGen.Generate(),
				AccountName:   account.Name,
				Kind:          domain.AnomalyApproachingLimit,
				Date:          days[i].Date,
				BalanceBefore: acct.Opening,
				BalanceAfter:  acct.Closing,
			}
		}
	}
	return nil
}

// DetectAll applies the per-type scans to every account: checking, savings
// and mortgage balances are scanned for overdrafts; credit balances for
// overpayments, then for limit proximity only when no overpayment exists.
func (d *AnomalyDetector) DetectAll(accounts []domain.Account, days []domain.DayRecord) []domain.Anomaly {
	anomalies := []domain.Anomaly{}
	for _, account := range accounts {
		if account.IsCredit() {
			if a := d.FindFirstCreditOverpayment(account, days); a != nil {
				anomalies = append(anomalies, *a)
				continue
			}
			if a := d.FindApproachingLimit(account, days); a != nil {
				anomalies = append(anomalies, *a)
			}
			continue
		}
		if a := d.FindFirstNegative(account, days); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	return anomalies
}
