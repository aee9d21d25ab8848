package engine

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
)

// ToMonths folds a day-record sequence into month records. Purely additive:
// a month opens on its first contained day's opening balance, closes on its
// last contained day's closing balance, and sums the daily totals in
// between. Inputs are never mutated.
func ToMonths(days []domain.DayRecord, accounts []domain.Account, mods []domain.BudgetModification) []domain.MonthRecord {
	months := []domain.MonthRecord{}

	var current *domain.MonthRecord
	for i := range days {
		day := &days[i]
		if current == nil || current.Year != day.Date.Year() || current.Month != day.Date.Month() {
			months = append(months, domain.MonthRecord{
				Year:     day.Date.Year(),
				Month:    day.Date.Month(),
				Accounts: newPeriodAccounts(accounts, day.Accounts),
			})
			current = &months[len(months)-1]
		}
		foldPeriod(current.Accounts, day.Accounts)
		current.TotalIncome = current.TotalIncome.Add(day.TotalIncome)
		current.TotalExpense = current.TotalExpense.Add(day.TotalExpense)
		current.HasModification = current.HasModification || day.HasModification
	}

	for i := range months {
		finishPeriod(months[i].Accounts, &months[i].HasActivity)
	}
	markModifiedMonths(months, mods)

	return months
}

// ToYears folds month records into year records with the same rules.
func ToYears(months []domain.MonthRecord, accounts []domain.Account, mods []domain.BudgetModification) []domain.YearRecord {
	years := []domain.YearRecord{}

	var current *domain.YearRecord
	for i := range months {
		month := &months[i]
		if current == nil || current.Year != month.Year {
			years = append(years, domain.YearRecord{
				Year:     month.Year,
				Accounts: newPeriodAccounts(accounts, month.Accounts),
			})
			current = &years[len(years)-1]
		}
		foldPeriod(current.Accounts, month.Accounts)
		current.TotalIncome = current.TotalIncome.Add(month.TotalIncome)
		current.TotalExpense = current.TotalExpense.Add(month.TotalExpense)
		current.HasModification = current.HasModification || month.HasModification
	}

	for i := range years {
		finishPeriod(years[i].Accounts, &years[i].HasActivity)
	}
	markModifiedYears(years, mods)

	return years
}

// newPeriodAccounts seeds a period's sub-records in caller account order
// from the period's first contained record: the period opens where its
// first member opened.
func newPeriodAccounts(accounts []domain.Account, first []domain.AccountActivity) []domain.AccountActivity {
	out := make([]domain.AccountActivity, 0, len(accounts))
	for _, a := range accounts {
		sub := domain.AccountActivity{
			AccountName:  a.Name,
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		}
		if src := findActivity(first, a.Name); src != nil {
			sub.Opening = src.Opening
			sub.Closing = src.Closing
		}
		out = append(out, sub)
	}
	return out
}

// foldPeriod accumulates one contained record into the running period
// sub-records: transactions and totals add up, the closing balance tracks
// the most recent member.
func foldPeriod(period []domain.AccountActivity, member []domain.AccountActivity) {
	for i := range period {
		src := findActivity(member, period[i].AccountName)
		if src == nil {
			continue
		}
		dst := &period[i]
		dst.Closing = src.Closing
		dst.Income = append(dst.Income, src.Income...)
		dst.Expense = append(dst.Expense, src.Expense...)
		dst.TotalIncome = dst.TotalIncome.Add(src.TotalIncome)
		dst.TotalExpense = dst.TotalExpense.Add(src.TotalExpense)
	}
}

func findActivity(list []domain.AccountActivity, name string) *domain.AccountActivity {
	for i := range list {
		if list[i].AccountName == name {
			return &list[i]
		}
	}
	return nil
}

func finishPeriod(accounts []domain.AccountActivity, hasActivity *bool) {
	for i := range accounts {
		acct := &accounts[i]
		acct.HasActivity = len(acct.Income) > 0 || len(acct.Expense) > 0
		*hasActivity = *hasActivity || acct.HasActivity
	}
}

func markModifiedMonths(months []domain.MonthRecord, mods []domain.BudgetModification) {
	for _, mod := range mods {
		for i := range months {
			if months[i].Year == mod.EffectiveDate.Year() && months[i].Month == mod.EffectiveDate.Month() {
				months[i].HasModification = true
			}
		}
	}
}

func markModifiedYears(years []domain.YearRecord, mods []domain.BudgetModification) {
	for _, mod := range mods {
		for i := range years {
			if years[i].Year == mod.EffectiveDate.Year() {
				years[i].HasModification = true
			}
		}
	}
}
