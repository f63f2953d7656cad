package entities

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// ExpectedValueKind discriminates the shape of an expected attribute value.
type ExpectedValueKind int

const (
	// ExpectedScalar compares by equality (case-insensitive for strings).
	ExpectedScalar ExpectedValueKind = iota
	// ExpectedOneOf accepts any member of a closed set of values.
	ExpectedOneOf
	// ExpectedRange accepts numeric values inside [Min, Max], with partial
	// credit for values outside it.
	ExpectedRange
	// ExpectedBool compares boolean values, coercing truthy string tokens.
	ExpectedBool
)

// ExpectedValue is a disease profile's expectation for a single symptom
// attribute. The shape is decided once when the profile is decoded, not
// re-inspected on every comparison.
type ExpectedValue struct {
	Kind   ExpectedValueKind
	OneOf  []interface{}
	Min    float64
	Max    float64
	Truth  bool
	Scalar interface{}
}

// UnmarshalJSON classifies the raw JSON shape into a tagged variant.
// A two-element list of numbers is a range; any other list is a closed
// set. Unrecognized shapes fall back to scalar equality.
func (v *ExpectedValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case []interface{}:
		if len(value) == 2 {
			low, lowOk := value[0].(float64)
			high, highOk := value[1].(float64)
			if lowOk && highOk {
				v.Kind = ExpectedRange
				v.Min = low
				v.Max = high
				return nil
			}
		}
		v.Kind = ExpectedOneOf
		v.OneOf = value
	case bool:
		v.Kind = ExpectedBool
		v.Truth = value
	default:
		v.Kind = ExpectedScalar
		v.Scalar = raw
	}

	return nil
}

// MarshalJSON restores the original wire shape of the expectation.
func (v ExpectedValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ExpectedRange:
		return json.Marshal([2]float64{v.Min, v.Max})
	case ExpectedOneOf:
		return json.Marshal(v.OneOf)
	case ExpectedBool:
		return json.Marshal(v.Truth)
	default:
		return json.Marshal(v.Scalar)
	}
}

// Match scores how well a reported value satisfies the expectation,
// from 0.0 (no match) to 1.0 (perfect match). A nil actual never matches.
func (v ExpectedValue) Match(actual interface{}) float64 {
	if actual == nil {
		return 0.0
	}

	switch v.Kind {
	case ExpectedRange:
		return v.matchRange(actual)
	case ExpectedOneOf:
		for _, candidate := range v.OneOf {
			if valuesEqual(candidate, actual) {
				return 1.0
			}
		}
		return 0.0
	case ExpectedBool:
		switch reported := actual.(type) {
		case bool:
			if reported == v.Truth {
				return 1.0
			}
			return 0.0
		case string:
			token := strings.ToLower(reported)
			truthy := token == "true" || token == "yes" || token == "1"
			if truthy == v.Truth {
				return 1.0
			}
			return 0.0
		default:
			return 0.0
		}
	default:
		if valuesEqual(v.Scalar, actual) {
			return 1.0
		}
		expectedStr, expectedIsStr := v.Scalar.(string)
		actualStr, actualIsStr := actual.(string)
		if expectedIsStr && actualIsStr && strings.EqualFold(expectedStr, actualStr) {
			return 1.0
		}
		return 0.0
	}
}

// matchRange gives full credit inside the bounds and linear partial credit
// outside them. The decay divides the distance by the violated bound
// itself rather than the range width, so it is asymmetric near zero.
// Disease profiles are calibrated against this curve.
func (v ExpectedValue) matchRange(actual interface{}) float64 {
	num, err := cast.ToFloat64E(actual)
	if err != nil {
		return 0.0
	}

	if num >= v.Min && num <= v.Max {
		return 1.0
	}

	var score float64
	if num < v.Min {
		score = 1.0 - ((v.Min - num) / v.Min * 0.5)
	} else {
		score = 1.0 - ((num - v.Max) / v.Max * 0.5)
	}
	if score < 0 {
		return 0.0
	}
	return score
}

// valuesEqual compares two reported/expected values, treating numbers of
// different Go types as equal when their float64 representations match.
func valuesEqual(expected, actual interface{}) bool {
	if expected == actual {
		return true
	}
	if isNumeric(expected) && isNumeric(actual) {
		return cast.ToFloat64(expected) == cast.ToFloat64(actual)
	}
	return false
}

func isNumeric(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}
