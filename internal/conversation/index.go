package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

const DefaultCollection = "conversations"

type Document struct {
	ID     string
	DBID   uint
	Source string
	Text   string
	Score  float32
}

// Index stores summary embeddings for similarity search.
type Index interface {
	EnsureCollection(ctx context.Context, dims int) error
	Upsert(ctx context.Context, doc Document, vector []float32) error
	Search(ctx context.Context, vector []float32, limit int) ([]Document, error)
}

type QdrantIndex struct {
	client     *qdrant.Client
	collection string
}

func NewQdrantIndex(client *qdrant.Client, collection string) *QdrantIndex {
	if collection == "" {
		collection = DefaultCollection
	}
	return &QdrantIndex{client: client, collection: collection}
}

func (q *QdrantIndex) EnsureCollection(ctx context.Context, dims int) error {
	if q.client == nil {
		return errors.New("qdrant client not configured")
	}

	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		return nil
	}

	return q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dims),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (q *QdrantIndex) Upsert(ctx context.Context, doc Document, vector []float32) error {
	if q.client == nil {
		return errors.New("qdrant client not configured")
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDNum(uint64(doc.DBID)),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"doc_id":   doc.ID,
					"db_id":    int64(doc.DBID),
					"source":   doc.Source,
					"document": doc.Text,
				}),
			},
		},
	})
	return err
}

func (q *QdrantIndex) Search(ctx context.Context, vector []float32, limit int) ([]Document, error) {
	if q.client == nil {
		return nil, errors.New("qdrant client not configured")
	}

	results, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(results))
	for _, r := range results {
		p := r.GetPayload()
		docs = append(docs, Document{
			ID:     p["doc_id"].GetStringValue(),
			DBID:   uint(p["db_id"].GetIntegerValue()),
			Source: p["source"].GetStringValue(),
			Text:   p["document"].GetStringValue(),
			Score:  r.GetScore(),
		})
	}
	return docs, nil
}
