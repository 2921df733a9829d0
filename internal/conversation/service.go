package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eleven-am/voice-console/internal/embedding"
)

const (
	contextResults = 3
	sourceSummary  = "summary"
)

var ErrEmptyQuery = errors.New("query is empty")

// Service stores end-of-call reports and answers context and call detail
// lookups over them.
type Service struct {
	store    *Store
	index    Index
	embedder embedding.Service
	logger   *slog.Logger
}

func NewService(store *Store, index Index, embedder embedding.Service, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		index:    index,
		embedder: embedder,
		logger:   logger.With("component", "conversation_service"),
	}
}

func (s *Service) EnsureIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	return s.index.EnsureCollection(ctx, s.embedder.Dimensions())
}

// StoreReport persists the report and, when it has a summary, indexes the
// summary for context search. Indexing failures are logged and do not fail
// the call.
func (s *Service) StoreReport(ctx context.Context, r *Report) (*Conversation, error) {
	c, err := r.Conversation()
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("store conversation: %w", err)
	}

	if c.Summary != "" {
		if err := s.indexSummary(ctx, c); err != nil {
			s.logger.Error("failed to embed or store summary", "db_id", c.ID, "error", err)
		}
	}

	s.logger.Info("conversation stored", "db_id", c.ID, "call_id", c.CallID)
	return c, nil
}

func (s *Service) indexSummary(ctx context.Context, c *Conversation) error {
	if s.index == nil {
		return errors.New("vector index not configured")
	}
	vec, err := s.embedder.Generate(ctx, c.Summary)
	if err != nil {
		return err
	}
	return s.index.Upsert(ctx, Document{
		ID:     SummaryDocID(c.ID),
		DBID:   c.ID,
		Source: sourceSummary,
		Text:   c.Summary,
	}, vec)
}

func (s *Service) Context(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if s.index == nil {
		return nil, errors.New("vector index not configured")
	}

	vec, err := s.embedder.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	docs, err := s.index.Search(ctx, vec, contextResults)
	if err != nil {
		return nil, fmt.Errorf("search summaries: %w", err)
	}

	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Text)
	}
	return out, nil
}

// CallDetails returns the stored report for a call, or shared.ErrNotFound
// while none has arrived.
func (s *Service) CallDetails(ctx context.Context, callID string) (*Conversation, error) {
	return s.store.GetLatestByCallID(ctx, callID)
}

// Get returns one stored conversation, or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*Conversation, error) {
	return s.store.GetByID(ctx, id)
}

// Recent returns up to limit conversations, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Conversation, error) {
	return s.store.ListRecent(ctx, limit)
}
