package evaluation

// GuardrailConfig holds pass/fail thresholds for an evaluation run.
type GuardrailConfig struct {
	MinAvgRecallAt10 float64
	MinAvgMRRAt10    float64
	MinHitRate       float64
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	return &Guardrails{config: config}
}

// Violations returns the names of thresholds the summary fails to meet.
func (g *Guardrails) Violations(s *EvalSummary) []string {
	violations := []string{}

	if s.AvgRecallAt10 < g.config.MinAvgRecallAt10 {
		violations = append(violations, "avg_recall_at_10")
	}
	if s.AvgMRRAt10 < g.config.MinAvgMRRAt10 {
		violations = append(violations, "avg_mrr_at_10")
	}
	if s.TotalCases > 0 {
		hitRate := float64(s.CasesWithHits) / float64(s.TotalCases)
		if hitRate < g.config.MinHitRate {
			violations = append(violations, "hit_rate")
		}
	}

	return violations
}

// Pass reports whether the summary clears every configured threshold.
func (g *Guardrails) Pass(s *EvalSummary) bool {
	return len(g.Violations(s)) == 0
}
