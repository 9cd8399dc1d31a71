// Package completion talks to hosted text-completion services.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/config"
)

// ErrNoCredential is returned by New when no API key is available.
// Callers treat it as "completion disabled", not as a failure.
var ErrNoCredential = errors.New("completion: no credential configured")

// Request is one system + user prompt exchange.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer sends a prompt and returns the model's text answer.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New builds a Completer for the configured provider. The configured cache
// directory, if any, wraps the client in a response cache.
func New(cfg config.LLMConfig, apiKey string, log *slog.Logger) (Completer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNoCredential
	}

	var c Completer
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderAnthropic:
		c = newAnthropicClient(apiKey, cfg)
	case config.ProviderOpenAI:
		c = newOpenAIClient(apiKey, cfg)
	default:
		return nil, fmt.Errorf("completion: unknown provider %q", cfg.Provider)
	}

	if cfg.CacheDir != "" {
		cache, err := NewCache(cfg.CacheDir, cfg.ModelName(), log)
		if err != nil {
			return nil, fmt.Errorf("completion: %w", err)
		}
		c = NewCachedCompleter(c, cache)
	}
	return c, nil
}

// withDefaults fills zero request fields from config.
func withDefaults(req Request, cfg config.LLMConfig) Request {
	if req.MaxTokens <= 0 {
		req.MaxTokens = cfg.MaxTokens
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = 1024
	}
	return req
}
