package io

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/dara-analytics/dara/internal/series"
	"github.com/dara-analytics/dara/internal/table"
)

// Read reads CSV data and returns a Table
func (r *CSVReader) Read() (*table.Table, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return table.New(), nil
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = records[0]
		dataRows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i)
		}
		dataRows = records
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	nulls := make(map[string]struct{}, len(r.options.NullValues))
	for _, n := range r.options.NullValues {
		nulls[n] = struct{}{}
	}

	cols := make([]table.Column, 0, len(headers))
	for i, header := range headers {
		raw := make([]string, len(dataRows))
		valid := make([]bool, len(dataRows))
		for j, row := range dataRows {
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if _, isNull := nulls[v]; isNull {
				continue
			}
			raw[j] = row[i]
			valid[j] = true
		}

		col, err := r.createColumn(header, raw, valid)
		if err != nil {
			return nil, fmt.Errorf("creating series for column %s: %w", header, err)
		}
		cols = append(cols, col)
	}

	return table.New(cols...), nil
}

// createColumn creates a series from string data using the override or inferred kind
func (r *CSVReader) createColumn(name string, raw []string, valid []bool) (table.Column, error) {
	kind := r.options.Kinds[name]
	if kind == KindInfer {
		kind = inferKind(raw, valid)
	}

	switch kind {
	case KindInt:
		values := make([]int64, len(raw))
		for i, s := range raw {
			if !valid[i] {
				continue
			}
			v, err := parseInt(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[i] = v
		}
		return series.NewNullable(name, values, valid, r.mem), nil
	case KindFloat:
		values := make([]float64, len(raw))
		for i, s := range raw {
			if !valid[i] {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			values[i] = v
		}
		return series.NewNullable(name, values, valid, r.mem), nil
	default:
		return series.NewNullable(name, raw, valid, r.mem), nil
	}
}

// parseInt accepts integral values written as floats ("1996.0").
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

// inferKind determines the most specific kind for the non-null values
func inferKind(raw []string, valid []bool) Kind {
	canBeInt := true
	canBeFloat := true
	hasValue := false

	for i, value := range raw {
		if !valid[i] {
			continue
		}
		hasValue = true
		value = strings.TrimSpace(value)

		if canBeInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				canBeInt = false
			}
		}
		if canBeFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				canBeFloat = false
				break
			}
		}
	}

	switch {
	case !hasValue:
		return KindString
	case canBeInt:
		return KindInt
	case canBeFloat:
		return KindFloat
	default:
		return KindString
	}
}
