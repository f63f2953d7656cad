package entities

import "time"

// SymptomMatch records one symptom that (fully or partially) matched a
// disease's expectations. Quality and importance are percentages.
type SymptomMatch struct {
	Symptom      string `json:"symptom"`
	MatchQuality int    `json:"match_quality"`
	Importance   int    `json:"importance"`
}

// MissingSymptom records an important expected symptom the patient did
// not report.
type MissingSymptom struct {
	Symptom    string `json:"symptom"`
	Importance int    `json:"importance"`
}

// NegativeMatch records a symptom whose absence supports the diagnosis.
type NegativeMatch struct {
	Symptom string `json:"symptom"`
	Note    string `json:"note"`
}

// DiagnosisResult is one ranked entry produced by the differential
// diagnosis engine. Confidence is a 0-100 score.
type DiagnosisResult struct {
	Disease          string           `json:"disease"`
	CommonName       string           `json:"common_name"`
	Category         string           `json:"category"`
	Confidence       float64          `json:"confidence"`
	MatchedSymptoms  []SymptomMatch   `json:"matched_symptoms"`
	PartiallyMatched []SymptomMatch   `json:"partially_matched"`
	MissingSymptoms  []MissingSymptom `json:"missing_symptoms"`
	NegativeMatches  []NegativeMatch  `json:"negative_matches"`
	Explanation      string           `json:"explanation"`
}

// DiagnosisEvent is one analytics record written per diagnosis request.
type DiagnosisEvent struct {
	ID           string    `json:"id"`
	Engine       string    `json:"engine"`
	SymptomCount int       `json:"symptom_count"`
	ResultCount  int       `json:"result_count"`
	TopDisease   string    `json:"top_disease"`
	TopScore     float64   `json:"top_score"`
	LatencyMs    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}
