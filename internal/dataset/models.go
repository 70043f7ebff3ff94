package dataset

// Canonical names of the semantic fields every customer table must carry.
const (
	FieldCreditScore = "credit_score"
	FieldDaysOverdue = "days_overdue"
	FieldDebtAmount  = "debt_amount"
)

// RequiredFields returns the semantic fields in validation order. The first
// absent field is the one reported to the user.
func RequiredFields() []string {
	return []string{FieldCreditScore, FieldDaysOverdue, FieldDebtAmount}
}

// Customer represents one row of the input table.
type Customer struct {
	CreditScore float64
	DaysOverdue float64
	DebtAmount  float64
}

// Table is an in-memory customer table. Fields lists the semantic fields
// present, using canonical names regardless of the source header spelling.
type Table struct {
	Fields    []string
	Customers []Customer
}

// NewTable builds a table over the given customers with all semantic
// fields marked present.
func NewTable(customers []Customer) *Table {
	return &Table{
		Fields:    RequiredFields(),
		Customers: customers,
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Customers)
}

// HasField reports whether the table carries the given semantic field.
// Field names are case-sensitive.
func (t *Table) HasField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Derived computations always operate on a
// copy so the caller's table is never aliased.
func (t *Table) Clone() *Table {
	clone := &Table{
		Fields:    make([]string, len(t.Fields)),
		Customers: make([]Customer, len(t.Customers)),
	}
	copy(clone.Fields, t.Fields)
	copy(clone.Customers, t.Customers)
	return clone
}

// FilterByScoreRange returns a new table holding the rows whose credit
// score falls within [low, high], both ends inclusive. Row order is
// preserved and the receiver is left untouched. An empty result is a
// valid table, not an error.
func (t *Table) FilterByScoreRange(low, high float64) *Table {
	filtered := &Table{Fields: make([]string, len(t.Fields))}
	copy(filtered.Fields, t.Fields)

	for _, c := range t.Customers {
		if c.CreditScore >= low && c.CreditScore <= high {
			filtered.Customers = append(filtered.Customers, c)
		}
	}
	return filtered
}
