package entities

import (
	"encoding/json"
	"math"
	"testing"
)

func decodeExpected(t *testing.T, raw string) ExpectedValue {
	t.Helper()
	var v ExpectedValue
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", raw, err)
	}
	return v
}

func TestExpectedValue_DecodeShapes(t *testing.T) {
	if v := decodeExpected(t, `[98.0, 100.4]`); v.Kind != ExpectedRange || v.Min != 98.0 || v.Max != 100.4 {
		t.Errorf("two-number list should decode as range, got kind=%d", v.Kind)
	}
	if v := decodeExpected(t, `["mild", "severe"]`); v.Kind != ExpectedOneOf {
		t.Errorf("string list should decode as closed set, got kind=%d", v.Kind)
	}
	// A two-element list that is not all-numeric is a closed set, not a range.
	if v := decodeExpected(t, `["1", 2]`); v.Kind != ExpectedOneOf {
		t.Errorf("mixed two-element list should decode as closed set, got kind=%d", v.Kind)
	}
	if v := decodeExpected(t, `true`); v.Kind != ExpectedBool || !v.Truth {
		t.Errorf("bool should decode as bool variant")
	}
	if v := decodeExpected(t, `"throbbing"`); v.Kind != ExpectedScalar {
		t.Errorf("string should decode as scalar, got kind=%d", v.Kind)
	}
	// Unrecognized shapes fall back to scalar equality.
	if v := decodeExpected(t, `{"weird": 1}`); v.Kind != ExpectedScalar {
		t.Errorf("object should fall back to scalar, got kind=%d", v.Kind)
	}
}

func TestExpectedValue_MatchRange(t *testing.T) {
	temp := decodeExpected(t, `[98.0, 100.4]`)

	if got := temp.Match(99.0); got != 1.0 {
		t.Errorf("in-range value should score 1.0, got %f", got)
	}
	if got := temp.Match(105.0); got <= 0.0 || got >= 1.0 {
		t.Errorf("out-of-range value should get partial credit, got %f", got)
	}
	// Partial credit formula: 1 - distance/bound * 0.5 against the
	// violated bound.
	want := 1.0 - (105.0-100.4)/100.4*0.5
	if got := temp.Match(105.0); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
	if got := temp.Match("99"); got != 1.0 {
		t.Errorf("numeric string should coerce into the range, got %f", got)
	}
	if got := temp.Match("not a number"); got != 0.0 {
		t.Errorf("non-numeric value against a range should score 0, got %f", got)
	}
	if got := temp.Match(nil); got != 0.0 {
		t.Errorf("nil should always score 0, got %f", got)
	}
}

func TestExpectedValue_MatchOneOf(t *testing.T) {
	severity := decodeExpected(t, `["mild", "severe"]`)

	if got := severity.Match("mild"); got != 1.0 {
		t.Errorf("member should score 1.0, got %f", got)
	}
	if got := severity.Match("moderate"); got != 0.0 {
		t.Errorf("non-member should score 0, got %f", got)
	}

	// Numeric membership compares values, not Go types.
	scale := decodeExpected(t, `[1, 2, 3]`)
	if got := scale.Match(2); got != 1.0 {
		t.Errorf("int reported against decoded float64 set should match, got %f", got)
	}
}

func TestExpectedValue_MatchBool(t *testing.T) {
	expected := decodeExpected(t, `true`)

	if got := expected.Match(true); got != 1.0 {
		t.Errorf("bool true should match, got %f", got)
	}
	if got := expected.Match("yes"); got != 1.0 {
		t.Errorf("truthy token should match, got %f", got)
	}
	if got := expected.Match("YES"); got != 1.0 {
		t.Errorf("truthy token match is case-insensitive, got %f", got)
	}
	if got := expected.Match("no"); got != 0.0 {
		t.Errorf("non-truthy token should not match, got %f", got)
	}
	if got := expected.Match(7); got != 0.0 {
		t.Errorf("non-bool non-string should score 0, got %f", got)
	}
}

func TestExpectedValue_MatchScalar(t *testing.T) {
	character := decodeExpected(t, `"throbbing"`)

	if got := character.Match("throbbing"); got != 1.0 {
		t.Errorf("equal strings should match, got %f", got)
	}
	if got := character.Match("Throbbing"); got != 1.0 {
		t.Errorf("string comparison is case-insensitive, got %f", got)
	}
	if got := character.Match("dull"); got != 0.0 {
		t.Errorf("different strings should score 0, got %f", got)
	}

	intensity := decodeExpected(t, `7`)
	if got := intensity.Match(7); got != 1.0 {
		t.Errorf("equal numbers of different types should match, got %f", got)
	}
}

func TestDiseaseProfile_Defaults(t *testing.T) {
	raw := `{"common_name": "Influenza", "symptoms": {"Fever": {"importance": 0.9}}}`

	var profile DiseaseProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}

	if profile.Category != DefaultCategory {
		t.Errorf("expected default category %q, got %q", DefaultCategory, profile.Category)
	}
	if profile.Prevalence != DefaultPrevalence {
		t.Errorf("expected default prevalence %f, got %f", DefaultPrevalence, profile.Prevalence)
	}

	explicit := `{"category": "Respiratory", "prevalence": 0.0, "symptoms": {}}`
	if err := json.Unmarshal([]byte(explicit), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Prevalence != 0.0 {
		t.Errorf("explicit zero prevalence must not be replaced by the default, got %f", profile.Prevalence)
	}
}

func TestNormalizeSymptom(t *testing.T) {
	if got := NormalizeSymptom("  Fever "); got != "fever" {
		t.Errorf("expected %q, got %q", "fever", got)
	}
}

func TestCaseTable_DuplicateColumnsFirstWins(t *testing.T) {
	table := NewCaseTable([]string{"Fever", "fever ", "Cough"}, nil)

	idx, ok := table.ColumnIndex("FEVER")
	if !ok || idx != 0 {
		t.Errorf("expected first occurrence at index 0, got %d (found=%v)", idx, ok)
	}
}
