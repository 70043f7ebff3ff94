package dataset

// SampleTable returns the small illustrative dataset substituted when no
// source is available. The rows cover every score band and a spread of
// delinquency so the dashboard stays meaningful without real data.
func SampleTable() *Table {
	return NewTable([]Customer{
		{CreditScore: 850, DaysOverdue: 5, DebtAmount: 1000},
		{CreditScore: 400, DaysOverdue: 90, DebtAmount: 5000},
		{CreditScore: 300, DaysOverdue: 120, DebtAmount: 12000},
		{CreditScore: 600, DaysOverdue: 30, DebtAmount: 2500},
		{CreditScore: 720, DaysOverdue: 10, DebtAmount: 800},
		{CreditScore: 250, DaysOverdue: 150, DebtAmount: 20000},
	})
}
