package services

import (
	"os"
)

type FeatureFlags struct {
	symptomNormalizationEnabled bool
	analyticsEnabled            bool
}

func NewFeatureFlags() *FeatureFlags {
	normalization := os.Getenv("FEATURE_SYMPTOM_NORMALIZATION") != "false"
	analytics := os.Getenv("FEATURE_DIAGNOSIS_ANALYTICS") != "false"

	return &FeatureFlags{
		symptomNormalizationEnabled: normalization,
		analyticsEnabled:            analytics,
	}
}

func (f *FeatureFlags) SymptomNormalizationEnabled() bool {
	return f.symptomNormalizationEnabled
}

func (f *FeatureFlags) AnalyticsEnabled() bool {
	return f.analyticsEnabled
}
