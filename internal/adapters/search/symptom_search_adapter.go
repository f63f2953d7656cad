package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/providers"
	tsclient "github.com/KMuszynski/dxly/internal/infrastructure/clients/typesense"
)

// SymptomsCollection is the Typesense collection holding the symptom index.
const SymptomsCollection = "symptoms"

// SymptomSearchAdapter implements symptom autocomplete using Typesense
type SymptomSearchAdapter struct {
	client *tsclient.Client
}

// Ensure SymptomSearchAdapter implements SymptomSearchProvider
var _ providers.SymptomSearchProvider = (*SymptomSearchAdapter)(nil)

// NewSymptomSearchAdapter creates a new symptom search adapter
func NewSymptomSearchAdapter(client *tsclient.Client) *SymptomSearchAdapter {
	return &SymptomSearchAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *SymptomSearchAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(SymptomsCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: SymptomsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "display_name", Type: "string"},
			{Name: "follow_up_count", Type: "int32"},
		},
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes one symptom library entry
func (a *SymptomSearchAdapter) Index(ctx context.Context, id string, profile entities.SymptomProfile) error {
	displayName := profile.DisplayName
	if displayName == "" {
		displayName = id
	}

	document := map[string]interface{}{
		"id":              id,
		"display_name":    displayName,
		"follow_up_count": len(profile.GlobalFollowUps) + len(profile.UniqueFollowUps),
	}

	_, err := a.client.Client().Collection(SymptomsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index symptom: %w", err)
	}

	return nil
}

// Search returns symptoms matching the query, best first
func (a *SymptomSearchAdapter) Search(ctx context.Context, query string, limit int) ([]providers.SymptomHit, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("display_name,id"),
		PerPage:  pointer.Int(limit),
		Prefix:   pointer.String("true"),
		NumTypos: pointer.String("2"),
	}

	result, err := a.client.Client().Collection(SymptomsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search symptoms: %w", err)
	}

	hits := []providers.SymptomHit{}
	if result.Hits == nil {
		return hits, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document

		id, _ := doc["id"].(string)
		displayName, _ := doc["display_name"].(string)

		hits = append(hits, providers.SymptomHit{
			ID:          id,
			DisplayName: displayName,
		})
	}

	return hits, nil
}

// Delete removes a symptom from the index
func (a *SymptomSearchAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(SymptomsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete symptom from index: %w", err)
	}
	return nil
}
