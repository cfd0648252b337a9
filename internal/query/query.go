// Package query provides the generic row primitives the dataset aggregations
// are composed from: filtering, grouping, per-group aggregates, stable
// multi-key sorting, top-N truncation, value counts and correlation.
//
// Every function is pure. Inputs are never modified; functions that reorder
// rows return a new slice.
package query

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat"
)

// Number is any integer or floating point type
type Number interface {
	constraints.Integer | constraints.Float
}

// Filter returns the rows for which keep reports true, in input order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Map applies f to every row.
func Map[T, V any](rows []T, f func(T) V) []V {
	out := make([]V, len(rows))
	for i, r := range rows {
		out[i] = f(r)
	}
	return out
}

// Collect applies f to every row and keeps the values f reports as present.
func Collect[T, V any](rows []T, f func(T) (V, bool)) []V {
	out := make([]V, 0, len(rows))
	for _, r := range rows {
		if v, ok := f(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// Group holds the rows sharing one key, in input order.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy partitions rows by key. Groups come back in ascending key order.
func GroupBy[K cmp.Ordered, T any](rows []T, key func(T) K) []Group[K, T] {
	return GroupByFunc(rows, key, cmp.Compare[K])
}

// GroupByFunc partitions rows by a comparable key. Groups are ordered by
// compare, or by first appearance when compare is nil.
func GroupByFunc[K comparable, T any](rows []T, key func(T) K, compare func(a, b K) int) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]

	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}

	if compare != nil {
		slices.SortStableFunc(groups, func(a, b Group[K, T]) int {
			return compare(a.Key, b.Key)
		})
	}
	return groups
}

// Count returns the number of rows matching pred.
func Count[T any](rows []T, pred func(T) bool) int {
	n := 0
	for _, r := range rows {
		if pred(r) {
			n++
		}
	}
	return n
}

// Sum adds xs.
func Sum[N Number](xs []N) N {
	var total N
	for _, x := range xs {
		total += x
	}
	return total
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean[N Number](xs []N) float64 {
	if len(xs) == 0 {
		return 0
	}
	floats := make([]float64, len(xs))
	for i, x := range xs {
		floats[i] = float64(x)
	}
	return stat.Mean(floats, nil)
}

// Min returns the smallest value of xs, or the zero value for an empty slice.
func Min[N Number](xs []N) N {
	if len(xs) == 0 {
		var zero N
		return zero
	}
	return slices.Min(xs)
}

// Max returns the largest value of xs, or the zero value for an empty slice.
func Max[N Number](xs []N) N {
	if len(xs) == 0 {
		var zero N
		return zero
	}
	return slices.Max(xs)
}

// NUnique counts distinct keys.
func NUnique[T any, K comparable](rows []T, key func(T) K) int {
	seen := make(map[K]struct{})
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// Unique returns the distinct keys in ascending order.
func Unique[T any, K cmp.Ordered](rows []T, key func(T) K) []K {
	out := UniqueInOrder(rows, key)
	slices.Sort(out)
	return out
}

// UniqueInOrder returns the distinct keys in order of first appearance.
func UniqueInOrder[T any, K comparable](rows []T, key func(T) K) []K {
	seen := make(map[K]struct{})
	out := make([]K, 0)
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Counted is one entry of a value count.
type Counted[K comparable] struct {
	Key   K
	Count int
}

// ValueCounts counts rows per key, most frequent first. Equal counts are
// ordered by ascending key.
func ValueCounts[T any, K cmp.Ordered](rows []T, key func(T) K) []Counted[K] {
	groups := GroupBy(rows, key)
	out := make([]Counted[K], len(groups))
	for i, g := range groups {
		out[i] = Counted[K]{Key: g.Key, Count: len(g.Rows)}
	}
	return SortStable(out, Desc(func(c Counted[K]) int { return c.Count }))
}

// Comparator orders two rows like cmp.Compare.
type Comparator[T any] func(a, b T) int

// Asc orders rows by f ascending.
func Asc[T any, V cmp.Ordered](f func(T) V) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

// Desc orders rows by f descending.
func Desc[T any, V cmp.Ordered](f func(T) V) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(f(b), f(a)) }
}

// SortStable returns a copy of rows sorted by the comparators in priority
// order. Rows equal under every comparator keep their input order.
func SortStable[T any](rows []T, by ...Comparator[T]) []T {
	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		for _, c := range by {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
	return out
}

// Top returns at most n leading rows. n <= 0 yields an empty slice.
func Top[T any](rows []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(rows) {
		n = len(rows)
	}
	return slices.Clone(rows[:n])
}

// ArgMax returns the index of the first row with the largest f, or -1.
func ArgMax[T any, V cmp.Ordered](rows []T, f func(T) V) int {
	best := -1
	for i, r := range rows {
		if best < 0 || cmp.Compare(f(r), f(rows[best])) > 0 {
			best = i
		}
	}
	return best
}

// ArgMin returns the index of the first row with the smallest f, or -1.
func ArgMin[T any, V cmp.Ordered](rows []T, f func(T) V) int {
	best := -1
	for i, r := range rows {
		if best < 0 || cmp.Compare(f(r), f(rows[best])) < 0 {
			best = i
		}
	}
	return best
}

// Correlation returns the Pearson correlation of x and y. Degenerate inputs
// (fewer than two points, zero variance) yield 0.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Decade truncates a year to its decade (1984 -> 1980).
func Decade(year int64) int64 {
	return year / 10 * 10
}

// SetDiff returns the elements of a absent from b, in a's order.
func SetDiff[K comparable](a, b []K) []K {
	exclude := make(map[K]struct{}, len(b))
	for _, k := range b {
		exclude[k] = struct{}{}
	}
	out := make([]K, 0)
	for _, k := range a {
		if _, ok := exclude[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Normalize trims and lower-cases a lookup name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameName reports whether two names match case-insensitively after trimming.
func SameName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Winner returns the name with the strictly greater value. On a tie it
// returns the name that sorts first ignoring case, so swapping the arguments
// never changes the result.
func Winner(a string, va float64, b string, vb float64) string {
	switch {
	case va > vb:
		return a
	case vb > va:
		return b
	case strings.ToLower(b) < strings.ToLower(a):
		return b
	default:
		return a
	}
}
