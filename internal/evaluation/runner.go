package evaluation

import (
	"context"
	"time"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

const evalTopN = 10

// DiagnosisProvider exposes both ranking engines to the runner.
type DiagnosisProvider interface {
	Diagnose(ctx context.Context, symptoms []string, topN int) ([]entities.DiseaseMatch, error)
	Differential(ctx context.Context, report entities.PatientReport, topN int, minConfidence float64) ([]entities.DiagnosisResult, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	service DiagnosisProvider
}

func NewRunner(service DiagnosisProvider) *Runner {
	return &Runner{service: service}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalCases: len(cases),
		ByEngine:   make(map[Engine]*EngineSummary),
	}

	for _, gc := range cases {
		start := time.Now()

		retrieved, err := r.rank(ctx, gc)
		duration := time.Since(start)

		if err != nil {
			continue
		}

		result := EvalResult{
			CaseID:            gc.ID,
			Engine:            gc.Engine,
			RecallAt10:        RecallAtK(gc.ExpectedDiseases, retrieved, evalTopN),
			MRRAt10:           MRRAtK(gc.ExpectedDiseases, retrieved, evalTopN),
			ResultCount:       len(retrieved),
			RetrievedDiseases: retrieved,
			Latency:           duration,
		}

		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) rank(ctx context.Context, gc GoldenCase) ([]string, error) {
	switch gc.Engine {
	case EngineDifferential:
		results, err := r.service.Differential(ctx, gc.Report, evalTopN, 0)
		if err != nil {
			return nil, err
		}
		diseases := make([]string, len(results))
		for i, res := range results {
			diseases[i] = res.Disease
		}
		return diseases, nil
	default:
		results, err := r.service.Diagnose(ctx, gc.Symptoms, evalTopN)
		if err != nil {
			return nil, err
		}
		diseases := make([]string, len(results))
		for i, res := range results {
			diseases[i] = res.Disease
		}
		return diseases, nil
	}
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.AvgRecallAt10 += res.RecallAt10
	s.AvgMRRAt10 += res.MRRAt10
	s.AvgLatency += res.Latency
	if res.ResultCount > 0 {
		s.CasesWithHits++
	}

	if _, ok := s.ByEngine[res.Engine]; !ok {
		s.ByEngine[res.Engine] = &EngineSummary{}
	}
	es := s.ByEngine[res.Engine]
	es.Count++
	es.AvgRecallAt10 += res.RecallAt10
	es.AvgMRRAt10 += res.MRRAt10
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.AvgRecallAt10 /= n
		s.AvgMRRAt10 /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, es := range s.ByEngine {
		if es.Count > 0 {
			n := float64(es.Count)
			es.AvgRecallAt10 /= n
			es.AvgMRRAt10 /= n
		}
	}
}
