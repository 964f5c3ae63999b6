package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	tsclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements lawyer directory search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements LawyerSearchRepository
var _ repositories.LawyerSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the lawyers collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.LawyersCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.LawyersCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "specialty", Type: "string", Facet: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "bio", Type: "string", Optional: pointer.True()},
			{Name: "rating", Type: "float", Facet: pointer.True()},
			{Name: "consult_count", Type: "int32"},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("rating"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// IndexLawyer upserts a lawyer document into the search index
func (a *TypesenseAdapter) IndexLawyer(ctx context.Context, lawyer *entities.Lawyer) error {
	document := map[string]interface{}{
		"id":            lawyer.ID,
		"name":          lawyer.Name,
		"specialty":     lawyer.Specialty,
		"city":          lawyer.City,
		"bio":           lawyer.Bio,
		"rating":        lawyer.Rating,
		"consult_count": lawyer.ConsultCount,
		"is_active":     lawyer.IsActive,
		"created_at":    lawyer.CreatedAt.Unix(),
	}

	if _, err := a.client.Client().Collection(tsclient.LawyersCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index lawyer: %w", err)
	}
	return nil
}

// RemoveLawyer deletes a lawyer document from the search index
func (a *TypesenseAdapter) RemoveLawyer(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(tsclient.LawyersCollection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete lawyer from index: %w", err)
	}
	return nil
}

// Search performs a full-text search over lawyer profiles
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.LawyerSearchParams) ([]*entities.Lawyer, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 30
	}

	filters := []string{"is_active:=true"}
	if params.Specialty != "" {
		filters = append(filters, fmt.Sprintf("specialty:=%s", params.Specialty))
	}
	if params.City != "" {
		filters = append(filters, fmt.Sprintf("city:=%s", params.City))
	}
	if params.MinRating > 0 {
		filters = append(filters, fmt.Sprintf("rating:>=%.1f", params.MinRating))
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,specialty,bio"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		SortBy:   pointer.String("rating:desc"),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.LawyersCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search lawyers: %w", err)
	}

	lawyers := []*entities.Lawyer{}
	if result.Hits == nil {
		return lawyers, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		lawyers = append(lawyers, documentToLawyer(*hit.Document))
	}
	return lawyers, nil
}

func documentToLawyer(doc map[string]interface{}) *entities.Lawyer {
	lawyer := &entities.Lawyer{}
	if v, ok := doc["id"].(string); ok {
		lawyer.ID = v
	}
	if v, ok := doc["name"].(string); ok {
		lawyer.Name = v
	}
	if v, ok := doc["specialty"].(string); ok {
		lawyer.Specialty = v
	}
	if v, ok := doc["city"].(string); ok {
		lawyer.City = v
	}
	if v, ok := doc["bio"].(string); ok {
		lawyer.Bio = v
	}
	if v, ok := doc["rating"].(float64); ok {
		lawyer.Rating = v
	}
	if v, ok := doc["consult_count"].(float64); ok {
		lawyer.ConsultCount = int(v)
	}
	if v, ok := doc["is_active"].(bool); ok {
		lawyer.IsActive = v
	}
	return lawyer
}
