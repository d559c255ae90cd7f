package types

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Text returns the textual form of a field value. Filters and ordering match
// against it and the text output formats print it, so a value reads the same
// everywhere.
//
// nil and nil pointers are "null", numbers use their shortest form ("1.5",
// "3", "1e+21", "NaN", "Infinity") and times are RFC3339Nano.
func Text(value interface{}) string {
	if isNilPointer(value) {
		return "null"
	}

	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// isNilPointer reports whether value is a typed nil pointer, whose String
// method would otherwise be called on a nil receiver
func isNilPointer(value interface{}) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// formatFloat renders numbers in shortest form: plain decimals between 1e-6
// and 1e21, exponent notation without zero padding outside that range
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exp, found := strings.Cut(s, "e")
	if !found || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

// isNonFinite reports whether value is a NaN or infinite float
func isNonFinite(value interface{}) bool {
	switch v := value.(type) {
	case float64:
		return math.IsNaN(v) || math.IsInf(v, 0)
	case float32:
		f := float64(v)
		return math.IsNaN(f) || math.IsInf(f, 0)
	}
	return false
}
