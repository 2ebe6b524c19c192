package scoreboard

import (
	"math"
	"strconv"
	"strings"
)

// Value is a parsed objective value: a number when the raw text parses as one,
// otherwise the raw text itself.
type Value struct {
	num     float64
	text    string
	numeric bool
}

// Number builds a numeric Value.
func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

// Text builds a textual Value.
func Text(s string) Value {
	return Value{text: s}
}

// ParseValue tries a float parse of raw and falls back to keeping the text.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	return Text(trimmed)
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.numeric
}

// Float returns the numeric value and whether it was numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// Int truncates the numeric value toward zero. Text values report false.
func (v Value) Int() (int, bool) {
	if !v.numeric || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return 0, false
	}
	switch {
	case v.num >= math.MaxInt:
		return math.MaxInt, true
	case v.num <= math.MinInt:
		return math.MinInt, true
	}
	return int(v.num), true
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}
