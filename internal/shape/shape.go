// Package shape converts aggregation results into their JSON response form.
//
// Rounding and integer coercion happen here, once, at the output boundary.
// Non-finite values never reach the encoder: they are replaced by 0.
package shape

import (
	"bytes"
	"math"
	"slices"

	"github.com/goccy/go-json"
	"golang.org/x/exp/constraints"
)

// Decimal places used across responses.
const (
	PercentPlaces = 2
	ScorePlaces   = 3
	PricePlaces   = 4
)

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round rounds v to places decimals, half to even. Non-finite input yields 0
// and negative zero is normalised to 0.
func Round(v float64, places int) float64 {
	v = Finite(v)
	p := math.Pow(10, float64(places))
	r := Finite(math.RoundToEven(v*p) / p)
	if r == 0 {
		return 0
	}
	return r
}

// Ratio returns num/den, or 0 when den is zero or the result is not finite.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Percent returns part/whole*100 with the Ratio zero rules.
func Percent(part, whole float64) float64 {
	return Ratio(part, whole) * 100
}

// Int coerces a count to a plain integer. Floats are rounded; non-finite floats become 0.
func Int[N constraints.Integer | constraints.Float](v N) int64 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f == math.Trunc(f) {
		return int64(v)
	}
	return int64(math.Round(f))
}

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is a JSON object whose keys are encoded in insertion order.
type Record []Field

// Set returns a copy of r with key set to value. An existing key keeps its
// position. r itself is never modified.
func (r Record) Set(key string, value any) Record {
	for i := range r {
		if r[i].Key == key {
			out := slices.Clone(r)
			out[i].Value = value
			return out
		}
	}
	return append(r[:len(r):len(r)], Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Message builds the {"message": ...} payload.
func Message(message string) Record {
	return Record{{Key: "message", Value: message}}
}

// MessageError builds the {"message": ..., "error": ...} payload.
func MessageError(message, errText string) Record {
	return Record{{Key: "message", Value: message}, {Key: "error", Value: errText}}
}

// Error builds the {"error": ...} payload.
func Error(errText string) Record {
	return Record{{Key: "error", Value: errText}}
}
