package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/KMuszynski/dxly/internal/adapters/dataset"
	"github.com/KMuszynski/dxly/internal/application/services"
	"github.com/KMuszynski/dxly/internal/evaluation"
	"github.com/KMuszynski/dxly/pkg/config"
)

func main() {
	var goldenPath string
	var minRecall float64
	var minMRR float64
	flag.StringVar(&goldenPath, "golden", "config/golden_cases.json", "path to the golden case set")
	flag.Float64Var(&minRecall, "min-recall", 0, "fail if average recall@10 falls below this value")
	flag.Float64Var(&minMRR, "min-mrr", 0, "fail if average MRR@10 falls below this value")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	caseTableRepo := dataset.NewCaseTableAdapter(cfg.Dataset.CaseTablePath)
	profileRepo := dataset.NewProfileAdapter(cfg.Dataset.DiseaseProfilesPath)
	libraryRepo := dataset.NewSymptomLibraryAdapter(cfg.Dataset.SymptomLibraryPath)

	diagnosisService := services.NewDiagnosisService(caseTableRepo, profileRepo, libraryRepo, nil, nil)

	cases, err := evaluation.LoadGoldenCases(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	runner := evaluation.NewRunner(diagnosisService)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinAvgRecallAt10: minRecall,
		MinAvgMRRAt10:    minMRR,
	})
	if violations := guardrails.Violations(summary); len(violations) > 0 {
		log.Printf("Guardrail violations: %v", violations)
		os.Exit(1)
	}
}
