package dataset

// Validate checks that every required semantic field is present on the
// table. Fields are checked in RequiredFields order and the first absent
// one is returned as a MissingColumnError; the table itself is never
// modified. A nil error means the table is safe for derived computation.
func Validate(t *Table) error {
	for _, field := range RequiredFields() {
		if !t.HasField(field) {
			return &MissingColumnError{Column: field}
		}
	}
	return nil
}
