package rule

import "reflect"

// looseEqual compares two values, treating all numeric types as equivalent
// so an int from Go code equals a float64 from parsed YAML or JSON.
func looseEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	actualNum, actualOK := toFloat64(actual)
	expectedNum, expectedOK := toFloat64(expected)
	if actualOK && expectedOK {
		return actualNum == expectedNum
	}

	return reflect.DeepEqual(actual, expected)
}

// compareNumeric applies a numeric operator. A non-numeric actual or
// expected value makes the condition false rather than an error.
func compareNumeric(op Operator, actual, expected any) bool {
	actualNum, ok := toFloat64(actual)
	if !ok {
		return false
	}
	expectedNum, ok := toFloat64(expected)
	if !ok {
		return false
	}

	switch op {
	case OperatorGt:
		return actualNum > expectedNum
	case OperatorGte:
		return actualNum >= expectedNum
	case OperatorLt:
		return actualNum < expectedNum
	case OperatorLte:
		return actualNum <= expectedNum
	default:
		return false
	}
}

// memberOf checks list membership. A non-list comparand makes the condition
// false.
func memberOf(actual, list any) bool {
	if list == nil {
		return false
	}
	val := reflect.ValueOf(list)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < val.Len(); i++ {
		if looseEqual(actual, val.Index(i).Interface()) {
			return true
		}
	}
	return false
}

// toFloat64 converts any numeric value to float64.
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
