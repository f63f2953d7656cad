package entities

import "encoding/json"

const (
	// DefaultCategory is used when a profile does not declare one.
	DefaultCategory = "General"
	// DefaultPrevalence is the prior probability assumed when a profile
	// does not declare one.
	DefaultPrevalence = 0.05
)

// SymptomExpectation describes what a disease profile expects for one
// symptom. A negative importance means the absence of the symptom
// supports the diagnosis; its magnitude is the weight either way.
type SymptomExpectation struct {
	Importance   float64                  `json:"importance"`
	Note         string                   `json:"note,omitempty"`
	Expectations map[string]ExpectedValue `json:"expectations,omitempty"`
}

// DiseaseProfile is the structured reference entry for one disease.
type DiseaseProfile struct {
	CommonName string                        `json:"common_name"`
	Category   string                        `json:"category"`
	Prevalence float64                       `json:"prevalence"`
	Symptoms   map[string]SymptomExpectation `json:"symptoms"`
}

// UnmarshalJSON applies the documented defaults for category and
// prevalence when the source data omits them.
func (p *DiseaseProfile) UnmarshalJSON(data []byte) error {
	type alias struct {
		CommonName string                        `json:"common_name"`
		Category   string                        `json:"category"`
		Prevalence *float64                      `json:"prevalence"`
		Symptoms   map[string]SymptomExpectation `json:"symptoms"`
	}

	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.CommonName = raw.CommonName
	p.Category = raw.Category
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	p.Prevalence = DefaultPrevalence
	if raw.Prevalence != nil {
		p.Prevalence = *raw.Prevalence
	}
	p.Symptoms = raw.Symptoms

	return nil
}

// FollowUp is one follow-up question attached to a symptom in the
// symptom library.
type FollowUp struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// SymptomProfile is the symptom-library entry for one symptom.
type SymptomProfile struct {
	DisplayName     string     `json:"display_name"`
	GlobalFollowUps []FollowUp `json:"global_follow_ups"`
	UniqueFollowUps []FollowUp `json:"unique_follow_ups"`
}

// PatientReport maps reported symptom ids to their attribute values.
// Presence of a key means the symptom was reported.
type PatientReport map[string]map[string]interface{}
