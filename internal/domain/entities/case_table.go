package entities

import "strings"

// CaseRow is one observational record: a disease paired with a binary
// symptom-presence vector over the table's symptom columns.
type CaseRow struct {
	Disease  string
	Symptoms []uint8
}

// CaseTable holds the disease/symptom co-occurrence dataset. It is loaded
// once and treated as immutable, so it is safe to share across requests.
type CaseTable struct {
	SymptomColumns []string
	Rows           []CaseRow

	columnIndex map[string]int
	frequencies map[string]int
}

// NewCaseTable builds a case table with its derived lookup structures.
// Duplicate normalized column names resolve to the first occurrence.
func NewCaseTable(symptomColumns []string, rows []CaseRow) *CaseTable {
	t := &CaseTable{
		SymptomColumns: symptomColumns,
		Rows:           rows,
		columnIndex:    make(map[string]int, len(symptomColumns)),
		frequencies:    make(map[string]int),
	}

	for i, col := range symptomColumns {
		normalized := NormalizeSymptom(col)
		if _, exists := t.columnIndex[normalized]; !exists {
			t.columnIndex[normalized] = i
		}
	}

	for _, row := range rows {
		t.frequencies[row.Disease]++
	}

	return t
}

// NormalizeSymptom normalizes a symptom name for matching.
func NormalizeSymptom(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ColumnIndex returns the column position for a symptom name, after
// normalization.
func (t *CaseTable) ColumnIndex(name string) (int, bool) {
	idx, ok := t.columnIndex[NormalizeSymptom(name)]
	return idx, ok
}

// Frequency returns how many case rows belong to the given disease.
func (t *CaseTable) Frequency(disease string) int {
	return t.frequencies[disease]
}

// DiseaseMatch is one ranked entry produced by the co-occurrence engine.
type DiseaseMatch struct {
	Disease           string  `json:"disease"`
	Score             float64 `json:"score"`
	MatchCount        int     `json:"match_count"`
	TotalSymptomCount int     `json:"total_symptom_count"`
	Frequency         int     `json:"frequency"`
	MatchPercentage   float64 `json:"match_percentage"`
	CaseCount         int     `json:"case_count"`
	ExactMatches      int     `json:"exact_matches"`
}
