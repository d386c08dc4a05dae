// Package coerce converts raw JSON scalars into typed, nullable column values.
//
// Inputs are expected to come from a json.Decoder with UseNumber enabled, so
// numbers arrive as json.Number and keep their original textual precision.
// None of the functions here return an error: malformed input yields nil.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Unix second bounds of years 0001 through 9999
const (
	minUnixSeconds int64 = -62135596800
	maxUnixSeconds int64 = 253402300799
)

// Postgres numeric limits on digits before and after the decimal point
const (
	maxNumericIntegerDigits  = 131072
	maxNumericFractionDigits = 16383
)

// Decimal converts numeric or numeric-string input into an exact decimal.
// Values outside the range of a Postgres numeric column yield nil.
func Decimal(raw any) *decimal.Decimal {
	var d decimal.Decimal
	switch v := raw.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		d = v
	case json.Number:
		return parseDecimal(v.String())
	case string:
		return parseDecimal(strings.TrimSpace(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		d = decimal.NewFromFloat(v)
	case float32:
		return Decimal(float64(v))
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return nil
	}

	if !fitsNumeric(d) {
		return nil
	}
	return &d
}

func parseDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !fitsNumeric(d) {
		return nil
	}
	return &d
}

// fitsNumeric checks the digit counts from the coefficient and exponent
// alone, without expanding the value
func fitsNumeric(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxNumericFractionDigits {
		return false
	}
	return int64(d.NumDigits())+exp <= maxNumericIntegerDigits
}

// Int converts an integral number into an int, rejecting fractions
func Int(raw any) *int {
	d := Decimal(raw)
	if d == nil || !d.IsInteger() {
		return nil
	}
	if !d.BigInt().IsInt64() {
		return nil
	}
	n64 := d.IntPart()
	if n64 > math.MaxInt32 || n64 < math.MinInt32 {
		return nil
	}
	n := int(n64)
	return &n
}

// Bool passes through JSON booleans only
func Bool(raw any) *bool {
	b, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &b
}

// String passes through non-empty JSON strings only
func String(raw any) *string {
	s, ok := raw.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Text stringifies scalar input, used for free-text columns the feed
// sometimes fills with numbers
func Text(raw any) *string {
	s, ok := stringify(raw)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// UTCTimestamp interprets an integer Unix epoch in seconds as a UTC time
func UTCTimestamp(raw any) *time.Time {
	var sec int64
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			d := Decimal(v)
			if d == nil || !d.IsInteger() || !d.BigInt().IsInt64() {
				return nil
			}
			n = d.IntPart()
		}
		sec = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil
		}
		sec = n
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil
		}
		if v < float64(minUnixSeconds) || v > float64(maxUnixSeconds) {
			return nil
		}
		sec = int64(v)
	case int:
		sec = int64(v)
	case int64:
		sec = v
	default:
		return nil
	}

	if sec < minUnixSeconds || sec > maxUnixSeconds {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// StringList turns a string into a one-element list and an array into a
// list of its stringified, non-empty items
func StringList(raw any) pq.StringArray {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return pq.StringArray{v}
	case []string:
		return compact(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := stringify(item)
			if !ok {
				continue
			}
			items = append(items, s)
		}
		return compact(items)
	default:
		return nil
	}
}

// Structured passes any JSON-compatible value through as a jsonb document.
// null, {} and [] all normalize to nil, so "absent" and "empty" cannot be
// told apart downstream.
func Structured(raw any) datatypes.JSON {
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
	case []any:
		if len(v) == 0 {
			return nil
		}
	case json.RawMessage:
		trimmed := strings.TrimSpace(string(v))
		if trimmed == "" || trimmed == "null" || trimmed == "{}" || trimmed == "[]" {
			return nil
		}
		return datatypes.JSON(v)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func compact(items []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringify(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
