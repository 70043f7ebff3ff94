package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/recuperacredito/recupera-go/config"
)

// ReadOptions configures the CSV reader.
type ReadOptions struct {
	// Pattern is a file path or a doublestar glob. A glob merges every
	// matching file into one table; each file must validate on its own.
	Pattern string
	// Columns maps semantic fields to accepted header spellings.
	Columns config.ColumnConfig
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// CSVReader loads customer tables from delimited text files.
type CSVReader struct {
	opts ReadOptions
}

// NewCSVReader creates a reader for the given options.
func NewCSVReader(opts ReadOptions) *CSVReader {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	return &CSVReader{opts: opts}
}

// ReadTable reads and merges all files matched by the pattern.
func (r *CSVReader) ReadTable(ctx context.Context) (*Table, error) {
	paths, err := r.expandPattern()
	if err != nil {
		return nil, err
	}

	table := NewTable(nil)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		table.Customers = append(table.Customers, part.Customers...)
	}
	return table, nil
}

func (r *CSVReader) expandPattern() ([]string, error) {
	pattern := r.opts.Pattern
	if pattern == "" {
		return nil, fmt.Errorf("%w: no input path given", ErrSourceUnavailable)
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, pattern)
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrSourceUnavailable, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *CSVReader) readFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, path)
	}
	defer f.Close()

	return parseCSV(f, path, r.opts.Columns, r.opts.Comma)
}

// ParseCSV parses one delimited stream into a table. name labels parse
// errors, typically the file name.
func ParseCSV(src io.Reader, name string, cols config.ColumnConfig) (*Table, error) {
	return parseCSV(src, name, cols, ',')
}

func parseCSV(src io.Reader, name string, cols config.ColumnConfig, comma rune) (*Table, error) {
	cr := csv.NewReader(src)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file, no header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	indexes, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	table := NewTable(nil)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		line++

		customer, err := parseCustomer(record, indexes)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		table.Customers = append(table.Customers, customer)
	}
	return table, nil
}

// resolveColumns maps each semantic field to its column index. Header
// matching is case-sensitive; the first accepted spelling found in the
// header wins. Fields are resolved in required order so the error names
// the first missing one.
func resolveColumns(header []string, cols config.ColumnConfig) (map[string]int, error) {
	aliases := map[string][]string{
		FieldCreditScore: cols.CreditScore,
		FieldDaysOverdue: cols.DaysOverdue,
		FieldDebtAmount:  cols.DebtAmount,
	}

	position := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := position[name]; !seen {
			position[name] = i
		}
	}

	indexes := make(map[string]int, len(aliases))
	for _, field := range RequiredFields() {
		found := false
		for _, alias := range aliases[field] {
			if idx, ok := position[alias]; ok {
				indexes[field] = idx
				found = true
				break
			}
		}
		if !found {
			return nil, &MissingColumnError{Column: field}
		}
	}
	return indexes, nil
}

func parseCustomer(record []string, indexes map[string]int) (Customer, error) {
	values := make(map[string]float64, len(indexes))
	for field, idx := range indexes {
		if idx >= len(record) {
			return Customer{}, fmt.Errorf("short row: no value for %s", field)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return Customer{}, fmt.Errorf("invalid numeric value %q for %s", record[idx], field)
		}
		values[field] = v
	}
	return Customer{
		CreditScore: values[FieldCreditScore],
		DaysOverdue: values[FieldDaysOverdue],
		DebtAmount:  values[FieldDebtAmount],
	}, nil
}
