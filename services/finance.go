package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rent-server/entities"
)

// MonthSummary is the finance view for one calendar month.
type MonthSummary struct {
	Month         string             `json:"month"`
	Expenses      []entities.Expense `json:"expenses"`
	TotalIncome   decimal.Decimal    `json:"total_income"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
	NetBalance    decimal.Decimal    `json:"net_balance"`
}

// SummarizeMonth filters by the "YYYY-MM" prefix of each entry's date.
// Matching on the string avoids shifting dates across zones.
func SummarizeMonth(expenses []entities.Expense, month string) MonthSummary {
	summary := MonthSummary{
		Month:         month,
		Expenses:      make([]entities.Expense, 0),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, e := range expenses {
		if len(e.Date) < 7 || e.Date[:7] != month {
			continue
		}
		summary.Expenses = append(summary.Expenses, e)
		switch e.Type {
		case entities.EntryIncome:
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
		case entities.EntryExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		}
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// firstTrackedMonth is where the month picker starts.
var firstTrackedMonth = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// MonthOptions lists months from January 2024 up to six months past now,
// newest first.
func MonthOptions(now time.Time) []MonthOption {
	end := time.Date(now.Year(), now.Month()+6, 1, 0, 0, 0, 0, time.UTC)
	var opts []MonthOption
	for cur := firstTrackedMonth; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		opts = append(opts, MonthOption{
			Value: fmt.Sprintf("%d-%02d", cur.Year(), int(cur.Month())),
			Label: cur.Format("January 2006"),
		})
	}
	for i, j := 0, len(opts)-1; i < j; i, j = i+1, j-1 {
		opts[i], opts[j] = opts[j], opts[i]
	}
	return opts
}
