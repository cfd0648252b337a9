// Package table provides the immutable arrow-backed table every dataset is loaded into.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/series"
)

// Column is the non-generic view of a series held by a Table.
type Column interface {
	Name() string
	Len() int
	NullN() int
	DataType() arrow.DataType
	IsNull(index int) bool
	Array() arrow.Array
	Release()
}

// Table represents a set of equally long named columns
type Table struct {
	columns map[string]Column
	order   []string // Maintains column order
}

// New creates a new Table from columns. Later duplicates replace earlier ones.
func New(cols ...Column) *Table {
	columns := make(map[string]Column, len(cols))
	order := make([]string, 0, len(cols))

	for _, c := range cols {
		name := c.Name()
		if _, exists := columns[name]; !exists {
			order = append(order, name)
		}
		columns[name] = c
	}

	return &Table{
		columns: columns,
		order:   order,
	}
}

// Columns returns the names of all columns in order
func (t *Table) Columns() []string {
	if t == nil || len(t.order) == 0 {
		return []string{}
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil || len(t.order) == 0 {
		return 0
	}
	return t.columns[t.order[0]].Len()
}

// Width returns the number of columns
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// Column returns the column with the given name
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return nil, false
	}
	c, exists := t.columns[name]
	return c, exists
}

// HasColumn checks if a column exists
func (t *Table) HasColumn(name string) bool {
	_, exists := t.Column(name)
	return exists
}

// Require returns a missing-column error for the first absent name.
func (t *Table) Require(op string, names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return daraerrors.NewMissingColumnError(op, name)
		}
	}
	return nil
}

// Select returns a new Table with only the specified columns. Unknown names
// are skipped. The columns are shared with t, so release t, not the result.
func (t *Table) Select(names ...string) *Table {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		if c, exists := t.Column(name); exists {
			cols = append(cols, c)
		}
	}
	return New(cols...)
}

// NumericColumns returns the int64 and float64 column names in table order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, name := range t.Columns() {
		switch t.columns[name].DataType().ID() {
		case arrow.INT64, arrow.FLOAT64:
			names = append(names, name)
		}
	}
	return names
}

// Strings returns a column as text. Numeric columns are formatted in their
// shortest decimal form.
func (t *Table) Strings(name string) ([]string, []bool, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, nil, daraerrors.NewMissingColumnError("Strings", name)
	}
	switch s := c.(type) {
	case *series.Series[string]:
		return s.Values(), s.Valid(), nil
	case *series.Series[int64]:
		ints := s.Values()
		out := make([]string, len(ints))
		for i, v := range ints {
			out[i] = strconv.FormatInt(v, 10)
		}
		return out, s.Valid(), nil
	case *series.Series[float64]:
		floats := s.Values()
		out := make([]string, len(floats))
		for i, v := range floats {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return out, s.Valid(), nil
	default:
		return nil, nil, fmt.Errorf("column %s is %s, not text", name, c.DataType())
	}
}

// Floats returns a numeric column as float64. Integer columns are widened.
func (t *Table) Floats(name string) ([]float64, []bool, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, nil, daraerrors.NewMissingColumnError("Floats", name)
	}
	switch s := c.(type) {
	case *series.Series[float64]:
		return s.Values(), s.Valid(), nil
	case *series.Series[int64]:
		ints := s.Values()
		out := make([]float64, len(ints))
		for i, v := range ints {
			out[i] = float64(v)
		}
		return out, s.Valid(), nil
	default:
		return nil, nil, fmt.Errorf("column %s is %s, not numeric", name, c.DataType())
	}
}

// Ints returns a numeric column as int64. Float columns are rounded.
func (t *Table) Ints(name string) ([]int64, []bool, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, nil, daraerrors.NewMissingColumnError("Ints", name)
	}
	switch s := c.(type) {
	case *series.Series[int64]:
		return s.Values(), s.Valid(), nil
	case *series.Series[float64]:
		floats := s.Values()
		out := make([]int64, len(floats))
		for i, v := range floats {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				out[i] = int64(math.Round(v))
			}
		}
		return out, s.Valid(), nil
	default:
		return nil, nil, fmt.Errorf("column %s is %s, not numeric", name, c.DataType())
	}
}

// String returns a string representation of the Table
func (t *Table) String() string {
	if t.Width() == 0 {
		return "Table[empty]"
	}

	parts := []string{fmt.Sprintf("Table[%dx%d]", t.Len(), t.Width())}
	for _, name := range t.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, t.columns[name].DataType().String()))
	}
	return strings.Join(parts, "\n")
}

// Release releases every column
func (t *Table) Release() {
	if t == nil {
		return
	}
	for _, c := range t.columns {
		c.Release()
	}
}
