package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// SimilarityService indexes job descriptions of completed analyses so prior
// analyses of similar roles can be surfaced. Index failures never fail an
// analysis; callers log and move on.
type SimilarityService interface {
	InitCollection() error
	IndexAnalysis(ctx context.Context, analysisID uuid.UUID, embedding []float32) error
	FindSimilar(ctx context.Context, queryEmbedding []float32, excludeID uuid.UUID, limit int) ([]SimilarMatch, error)
	Enabled() bool
}

type SimilarMatch struct {
	AnalysisID string
	Score      float32
}

type similarityService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewSimilarityService(urlStr, apiKey, collectionName string) (SimilarityService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &similarityService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

func (s *similarityService) Enabled() bool {
	return true
}

// InitCollection implements SimilarityService.
func (s *similarityService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// IndexAnalysis implements SimilarityService.
func (s *similarityService) IndexAnalysis(ctx context.Context, analysisID uuid.UUID, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(analysisID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"analysis_id": analysisID.String(),
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindSimilar implements SimilarityService.
func (s *similarityService) FindSimilar(ctx context.Context, queryEmbedding []float32, excludeID uuid.UUID, limit int) ([]SimilarMatch, error) {
	searchResult, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit + 1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var matches []SimilarMatch
	for _, point := range searchResult {
		match := SimilarMatch{Score: point.Score}

		if id, ok := point.Payload["analysis_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				match.AnalysisID = val.StringValue
			}
		}

		// The query vector is already indexed, skip the record itself.
		if match.AnalysisID == excludeID.String() {
			continue
		}

		matches = append(matches, match)
		if len(matches) == limit {
			break
		}
	}

	return matches, nil
}

// NopSimilarityService is wired when no Qdrant instance is configured. All
// operations succeed without doing anything.
type NopSimilarityService struct{}

func NewNopSimilarityService() *NopSimilarityService {
	return &NopSimilarityService{}
}

func (n *NopSimilarityService) Enabled() bool { return false }

func (n *NopSimilarityService) InitCollection() error { return nil }

func (n *NopSimilarityService) IndexAnalysis(_ context.Context, _ uuid.UUID, _ []float32) error {
	return nil
}

func (n *NopSimilarityService) FindSimilar(_ context.Context, _ []float32, _ uuid.UUID, _ int) ([]SimilarMatch, error) {
	return nil, nil
}
