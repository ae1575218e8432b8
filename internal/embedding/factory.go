package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// NewEmbedder builds the embedder selected by matcher.embedder. keep lists
// stop words the lexical embedder must not drop.
func NewEmbedder(ctx context.Context, cfg *config.Config, keep map[string]bool) (Embedder, error) {
	log := logger.New()

	var inner Embedder
	switch strings.ToLower(cfg.Matcher.Embedder) {
	case "", "lexical":
		return NewLexicalEmbedder(DefaultLexicalDimension, keep), nil
	case "ollama":
		e, err := NewOllamaEmbedder(cfg.Ollama.Host, cfg.Matcher.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		inner = e
	case "openai":
		inner = NewOpenAIEmbedder(cfg.OpenAI.APIKey,
			WithOpenAIModel(cfg.Matcher.EmbeddingModel),
			WithOpenAIBaseURL(cfg.OpenAI.BaseURL),
		)
	default:
		return nil, fmt.Errorf("unsupported embedder: %s (supported: lexical, ollama, openai)", cfg.Matcher.Embedder)
	}

	var cache Cache = NewMemoryCache()
	if strings.EqualFold(cfg.Matcher.Cache, "redis") {
		rc := NewRedisCache(cfg.Redis.Addr, time.Duration(cfg.Redis.TTL)*time.Hour)
		if err := rc.Ping(ctx); err != nil {
			log.WithError(err).Warn("Redis unavailable, caching embeddings in memory")
		} else {
			cache = rc
		}
	}

	log.Debug(fmt.Sprintf("Using %s embeddings", inner.Name()))
	return NewCachedEmbedder(inner, cache), nil
}
