package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"abhinav/interview-coach/internal/llm"
)

// KnowledgeService is the role-rubric knowledge base. Interviewer rubrics and
// role expectation documents are chunked, embedded, and stored in Qdrant;
// at interview start the most relevant chunks for the candidate's role are
// retrieved and appended to the interviewer's context.
type KnowledgeService interface {
	InitCollection() error
	IngestRubric(ctx context.Context, docID string, role string, text string) error
	RetrieveRoleContext(ctx context.Context, role string, limit int) (string, error)
	DeleteRubric(ctx context.Context, docID string) error
}

type rubricChunk struct {
	ID    string
	Score float32
	Text  string
	Role  string
}

type knowledgeService struct {
	client         *qdrant.Client
	gateway        llm.Gateway
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewKnowledgeService(urlStr, apiKey, collectionName string, gateway llm.Gateway) (KnowledgeService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
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

	return &knowledgeService{
		client:         client,
		gateway:        gateway,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

func (k *knowledgeService) InitCollection() error {
	ctx := context.Background()

	exists, err := k.client.CollectionExists(ctx, k.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Println("✅ Rubric collection already exists")
		return nil
	}

	err = k.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: k.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     k.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", k.collectionName)
	return nil
}

// IngestRubric chunks a rubric document, embeds every chunk, and upserts the
// chunks tagged with the role they describe.
func (k *knowledgeService) IngestRubric(ctx context.Context, docID string, role string, text string) error {
	chunks := k.chunker.ChunkText(text, 1000, 200)
	if len(chunks) == 0 {
		return fmt.Errorf("no ingestable content in document %s", docID)
	}

	role = strings.ToLower(strings.TrimSpace(role))

	var points []*qdrant.PointStruct
	for i, chunk := range chunks {
		embedding, err := k.gateway.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of %s: %w", i, docID, err)
		}

		pointID := uuid.New()
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(pointID.ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"doc_id":      docID,
				"role":        role,
				"text":        chunk,
				"chunk_index": i,
			}),
		})
	}

	_, err := k.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: k.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert rubric chunks: %w", err)
	}

	log.Printf("✅ Ingested %d chunks for rubric %s (role: %s)\n", len(points), docID, role)
	return nil
}

// RetrieveRoleContext embeds the role description and returns the most
// similar rubric chunks formatted as a context block. An empty string with
// no error means the knowledge base has nothing useful for this role.
func (k *knowledgeService) RetrieveRoleContext(ctx context.Context, role string, limit int) (string, error) {
	if limit <= 0 {
		limit = 3
	}

	query := fmt.Sprintf("Interview rubric and evaluation criteria for a %s role", role)
	embedding, err := k.gateway.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed role query: %w", err)
	}

	results, err := k.search(ctx, embedding, strings.ToLower(strings.TrimSpace(role)), limit)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		// Retry without the role filter so a generic rubric can still match
		results, err = k.search(ctx, embedding, "", limit)
		if err != nil {
			return "", err
		}
	}
	if len(results) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Relevant interviewer guidance for this role:\n")
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n[Rubric %d] (relevance: %.2f)\n%s\n", i+1, r.Score, r.Text))
	}
	return sb.String(), nil
}

func (k *knowledgeService) search(ctx context.Context, embedding []float32, role string, limit int) ([]rubricChunk, error) {
	var filter *qdrant.Filter
	if role != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("role", role),
			},
		}
	}

	points, err := k.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: k.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search rubrics: %w", err)
	}

	var results []rubricChunk
	for _, point := range points {
		chunk := rubricChunk{Score: point.Score}
		if v, ok := point.Payload["doc_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.ID = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.Text = s.StringValue
			}
		}
		if v, ok := point.Payload["role"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.Role = s.StringValue
			}
		}
		results = append(results, chunk)
	}
	return results, nil
}

func (k *knowledgeService) DeleteRubric(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := k.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: k.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete rubric: %w", err)
	}
	return nil
}
