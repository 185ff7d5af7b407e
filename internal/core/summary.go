package core

// MonthSummary is the income/expense balance of a single month.
type MonthSummary struct {
	Month   YearMonth
	Income  int64
	Expense int64
	Balance int64
}

// RangeSummary is the income/expense balance over an inclusive month range.
type RangeSummary struct {
	StartMonth YearMonth
	EndMonth   YearMonth
	Income     int64
	Expense    int64
	Balance    int64
}

// CategoryTotal is the sum of one kind's amounts for one category.
type CategoryTotal struct {
	Category string
	Total    int64
}

// KindTotals pairs a kind with its per-category totals.
type KindTotals struct {
	Kind   Kind
	Totals []CategoryTotal
}

func NewMonthSummary(ym YearMonth, income, expense int64) MonthSummary {
	return MonthSummary{
		Month:   ym,
		Income:  income,
		Expense: expense,
		Balance: income - expense,
	}
}

func NewRangeSummary(start, end YearMonth, income, expense int64) RangeSummary {
	return RangeSummary{
		StartMonth: start,
		EndMonth:   end,
		Income:     income,
		Expense:    expense,
		Balance:    income - expense,
	}
}
