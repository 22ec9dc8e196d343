package valuation

import (
	"strconv"
	"strings"
)

// Field holds one numeric form field exactly as the user typed it, together
// with the result of parsing it. Keeping the raw text means the caller can
// echo partial input (e.g. "1." or "-") back to the user without the engine
// fighting their keystrokes; Valid tells recomputation logic whether the
// field may be used as an input.
type Field struct {
	Raw   string
	Value float64
	Valid bool
}

// ParseField builds a Field from raw user input. Leading and trailing
// whitespace is ignored for parsing but the raw text is kept verbatim.
func ParseField(raw string) Field {
	f := Field{Raw: raw}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return f
	}
	f.Value = v
	f.Valid = true
	return f
}

// FieldOf builds a valid Field from a computed value, rendering the raw text
// with the given number of decimal places.
func FieldOf(value float64, decimals int) Field {
	return Field{
		Raw:   strconv.FormatFloat(value, 'f', decimals, 64),
		Value: value,
		Valid: true,
	}
}
