package services

import (
	"math"
	"sort"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

const (
	exactMatchBonus      = 2.0
	singleSymptomBonus   = 1.5
	frequencyWeightScale = 10000.0
	confidenceCaseScale  = 10.0
	confidenceWeightCap  = 2.0
)

// diseaseStats accumulates per-disease running totals for one query.
type diseaseStats struct {
	totalScore           float64
	matchCount           int
	caseCount            int
	exactMatches         int
	singleSymptomMatches int
}

// CooccurrenceService ranks diseases against a binary symptom-presence
// case table. It is stateless and safe for concurrent use.
type CooccurrenceService struct{}

// NewCooccurrenceService creates a new co-occurrence ranking service.
func NewCooccurrenceService() *CooccurrenceService {
	return &CooccurrenceService{}
}

// ResolveSymptoms maps symptom names to column indices in the case table,
// preserving input order. Names that do not resolve are dropped silently;
// an unknown symptom simply contributes nothing.
func (s *CooccurrenceService) ResolveSymptoms(table *entities.CaseTable, symptomNames []string) []int {
	indices := make([]int, 0, len(symptomNames))
	for _, name := range symptomNames {
		if idx, ok := table.ColumnIndex(name); ok {
			indices = append(indices, idx)
		}
	}
	return indices
}

// Rank scores every disease in the case table against the queried
// symptoms and returns the top N matches, best first. An empty resolved
// symptom set yields an empty result.
func (s *CooccurrenceService) Rank(table *entities.CaseTable, symptomNames []string, topN int) []entities.DiseaseMatch {
	indices := s.ResolveSymptoms(table, symptomNames)
	if len(indices) == 0 {
		return []entities.DiseaseMatch{}
	}

	stats := make(map[string]*diseaseStats)
	// Result order for tied scores follows the order diseases are first
	// encountered in the table, so track it explicitly.
	order := make([]string, 0)

	for _, row := range table.Rows {
		matched := 0
		for _, idx := range indices {
			if idx < len(row.Symptoms) && row.Symptoms[idx] == 1 {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		totalInRow := 0
		for _, present := range row.Symptoms {
			if present == 1 {
				totalInRow++
			}
		}

		ds, ok := stats[row.Disease]
		if !ok {
			ds = &diseaseStats{}
			stats[row.Disease] = ds
			order = append(order, row.Disease)
		}
		ds.caseCount++

		base := float64(matched) / float64(len(indices)) * 100

		if matched == len(indices) {
			ds.exactMatches++
			base *= exactMatchBonus
		}
		// A row with exactly one symptom that is also one of ours is a
		// strong correlation signal. Both bonuses can stack.
		if totalInRow == 1 && matched == 1 {
			ds.singleSymptomMatches++
			base *= singleSymptomBonus
		}

		frequencyWeight := 1.0 + float64(table.Frequency(row.Disease))/frequencyWeightScale

		ds.totalScore += base * frequencyWeight
		ds.matchCount += matched
	}

	results := make([]entities.DiseaseMatch, 0, len(order))
	for _, disease := range order {
		ds := stats[disease]

		avgScore := ds.totalScore / float64(ds.caseCount)
		confidenceWeight := math.Min(float64(ds.caseCount)/confidenceCaseScale, confidenceWeightCap)
		finalScore := avgScore * confidenceWeight

		matchPercentage := float64(ds.matchCount) / float64(ds.caseCount*len(indices)) * 100

		results = append(results, entities.DiseaseMatch{
			Disease:           disease,
			Score:             round2(finalScore),
			MatchCount:        ds.matchCount,
			TotalSymptomCount: len(indices),
			Frequency:         table.Frequency(disease),
			MatchPercentage:   round2(matchPercentage),
			CaseCount:         ds.caseCount,
			ExactMatches:      ds.exactMatches,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN > 0 && topN < len(results) {
		results = results[:topN]
	}
	return results
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
