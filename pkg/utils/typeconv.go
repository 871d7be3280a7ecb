package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToTime coerces a store value to a timestamp. Only the stores' native
// timestamp types qualify; strings and numbers do not.
func ToTime(val interface{}) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case primitive.DateTime:
		return v.Time(), true
	default:
		return time.Time{}, false
	}
}

// ToFloat64 coerces any numeric store value to a float64.
func ToFloat64(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// NumericallyEqual reports whether two store values are both numeric and
// equal. A non-numeric operand on either side is never equal.
func NumericallyEqual(a, b interface{}) bool {
	fa, ok := ToFloat64(a)
	if !ok {
		return false
	}
	fb, ok := ToFloat64(b)
	if !ok {
		return false
	}
	return fa == fb
}
