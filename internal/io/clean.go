package io

import (
	"fmt"
	"math"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dara-analytics/dara/internal/series"
	"github.com/dara-analytics/dara/internal/table"
)

// Unspecified is the fill value for missing or unknown categorical values.
const Unspecified = "Unspecified"

// CleanOptions configures the one-time cleaning pass applied after a load.
type CleanOptions struct {
	// StringDefault fills null string cells (default: Unspecified)
	StringDefault string
	// Defaults overrides StringDefault per column
	Defaults map[string]string
	// Enums restricts a string column to an allowed set; other values become Unspecified
	Enums map[string][]string
	// Keep lists columns whose nulls are meaningful and must survive cleaning
	Keep []string
}

// Clean returns a new table in which every column not listed in Keep has no
// nulls: numeric nulls take the column mean (rounded for integer columns,
// 0 when the column has no values), string nulls take the column default and
// every string is trimmed. The input table is left untouched.
func Clean(t *table.Table, opts CleanOptions, mem memory.Allocator) (*table.Table, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if opts.StringDefault == "" {
		opts.StringDefault = Unspecified
	}

	keep := make(map[string]bool, len(opts.Keep))
	for _, name := range opts.Keep {
		keep[name] = true
	}

	cols := make([]table.Column, 0, t.Width())
	for _, name := range t.Columns() {
		c, _ := t.Column(name)

		var (
			cleaned table.Column
			err     error
		)
		switch s := c.(type) {
		case *series.Series[string]:
			cleaned = cleanStrings(s, opts, keep[name], mem)
		case *series.Series[int64]:
			cleaned = cleanInts(s, keep[name], mem)
		case *series.Series[float64]:
			cleaned = cleanFloats(s, keep[name], mem)
		default:
			err = fmt.Errorf("column %s has unsupported type %s", name, c.DataType())
		}
		if err != nil {
			for _, done := range cols {
				done.Release()
			}
			return nil, err
		}
		cols = append(cols, cleaned)
	}

	return table.New(cols...), nil
}

func cleanStrings(s *series.Series[string], opts CleanOptions, keep bool, mem memory.Allocator) table.Column {
	values := s.Values()
	valid := s.Valid()

	fill := opts.StringDefault
	if d, ok := opts.Defaults[s.Name()]; ok {
		fill = d
	}

	var allowed map[string]bool
	if enum, ok := opts.Enums[s.Name()]; ok {
		allowed = make(map[string]bool, len(enum))
		for _, v := range enum {
			allowed[v] = true
		}
	}

	for i := range values {
		if !valid[i] {
			if keep {
				continue
			}
			values[i] = fill
			valid[i] = true
		}
		values[i] = strings.TrimSpace(values[i])
		if allowed != nil && !allowed[values[i]] {
			values[i] = Unspecified
		}
	}

	if keep {
		return series.NewNullable(s.Name(), values, valid, mem)
	}
	return series.New(s.Name(), values, mem)
}

func cleanInts(s *series.Series[int64], keep bool, mem memory.Allocator) table.Column {
	values := s.Values()
	valid := s.Valid()
	if keep || s.NullN() == 0 {
		return series.NewNullable(s.Name(), values, valid, mem)
	}

	var sum float64
	var n int
	for i, v := range values {
		if valid[i] {
			sum += float64(v)
			n++
		}
	}
	var fill int64
	if n > 0 {
		fill = int64(math.Round(sum / float64(n)))
	}
	for i := range values {
		if !valid[i] {
			values[i] = fill
		}
	}
	return series.New(s.Name(), values, mem)
}

func cleanFloats(s *series.Series[float64], keep bool, mem memory.Allocator) table.Column {
	values := s.Values()
	valid := s.Valid()
	if keep || s.NullN() == 0 {
		return series.NewNullable(s.Name(), values, valid, mem)
	}

	var sum float64
	var n int
	for i, v := range values {
		if valid[i] && !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	var fill float64
	if n > 0 {
		fill = sum / float64(n)
	}
	for i := range values {
		if !valid[i] || math.IsNaN(values[i]) {
			values[i] = fill
		}
	}
	return series.New(s.Name(), values, mem)
}
