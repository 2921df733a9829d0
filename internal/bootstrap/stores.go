package bootstrap

import (
	"context"
	"log/slog"

	"github.com/eleven-am/voice-console/internal/callmetrics"
	"github.com/eleven-am/voice-console/internal/conversation"
	"github.com/eleven-am/voice-console/internal/embedding"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideConversationStore(db *gorm.DB) *conversation.Store {
	return conversation.NewStore(db)
}

func ProvideConversationIndex(client *qdrant.Client, cfg *Config) conversation.Index {
	return conversation.NewQdrantIndex(client, cfg.QdrantCollection)
}

func ProvideEmbeddingService(cfg *Config, logger *slog.Logger) (embedding.Service, error) {
	return embedding.New(context.Background(), embedding.Config{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.EmbeddingModel,
		Dimensions: cfg.EmbeddingDimensions,
	}, logger)
}

func ProvideConversationService(store *conversation.Store, index conversation.Index, embedder embedding.Service, logger *slog.Logger) *conversation.Service {
	return conversation.NewService(store, index, embedder, logger)
}

func ProvideCallMetricsStore(redisClient *redis.Client) *callmetrics.Store {
	return callmetrics.NewStore(redisClient)
}

func RunMigrations(store *conversation.Store) error {
	return store.Migrate()
}

// EnsureIndex creates the summary collection on startup. A missing qdrant
// only disables context search, so the failure is logged.
func EnsureIndex(lc fx.Lifecycle, service *conversation.Service, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := service.EnsureIndex(ctx); err != nil {
				logger.Warn("summary index unavailable", "error", err)
			}
			return nil
		},
	})
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideConversationStore,
		ProvideConversationIndex,
		ProvideEmbeddingService,
		ProvideConversationService,
		ProvideCallMetricsStore,
	),
	fx.Invoke(RunMigrations),
	fx.Invoke(EnsureIndex),
)
