package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/KMuszynski/dxly/internal/adapters/dataset"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/postgres"
	"github.com/KMuszynski/dxly/pkg/config"
)

// Seeds the diseases and disease_symptoms tables from the JSON profile
// file, for deployments running with PROFILE_SOURCE=postgres.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	profileRepo := dataset.NewProfileAdapter(cfg.Dataset.DiseaseProfilesPath)
	profiles, err := profileRepo.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load disease profiles: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				disease_symptoms,
				diseases,
				diagnosis_analytics
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	db := goqu.New("postgres", pgClient.DB())

	diseaseIDs := make([]string, 0, len(profiles))
	for id := range profiles {
		diseaseIDs = append(diseaseIDs, id)
	}
	sort.Strings(diseaseIDs)

	seeded := 0
	for _, id := range diseaseIDs {
		profile := profiles[id]

		insert, args, err := db.Insert("diseases").
			Rows(goqu.Record{
				"id":          id,
				"common_name": profile.CommonName,
				"category":    profile.Category,
				"prevalence":  profile.Prevalence,
			}).
			OnConflict(goqu.DoNothing()).
			ToSQL()
		if err != nil {
			log.Fatalf("Failed to build disease insert for %q: %v", id, err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, insert, args...); err != nil {
			log.Fatalf("Failed to insert disease %q: %v", id, err)
		}

		for symptom, expectation := range profile.Symptoms {
			rawExpectations, err := json.Marshal(expectation.Expectations)
			if err != nil {
				log.Fatalf("Failed to encode expectations for %q/%q: %v", id, symptom, err)
			}

			insert, args, err := db.Insert("disease_symptoms").
				Rows(goqu.Record{
					"disease_id":   id,
					"symptom":      symptom,
					"importance":   expectation.Importance,
					"note":         expectation.Note,
					"expectations": string(rawExpectations),
				}).
				OnConflict(goqu.DoNothing()).
				ToSQL()
			if err != nil {
				log.Fatalf("Failed to build symptom insert for %q/%q: %v", id, symptom, err)
			}
			if _, err := pgClient.DB().ExecContext(ctx, insert, args...); err != nil {
				log.Fatalf("Failed to insert symptom %q for %q: %v", symptom, id, err)
			}
		}

		seeded++
	}

	log.Printf("Seeded %d disease profiles", seeded)
}
