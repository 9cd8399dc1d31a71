package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}

	if c.RateLimit.UploadPerMinute <= 0 {
		return fmt.Errorf("rate_limit.upload_per_minute must be > 0 (got %d)", c.RateLimit.UploadPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	switch l.Provider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderAnthropic, ProviderOpenAI, l.Provider)
	}

	l.LocalSplitter = strings.ToLower(strings.TrimSpace(l.LocalSplitter))
	switch l.LocalSplitter {
	case SplitterHeuristic, SplitterPunkt:
	default:
		return fmt.Errorf("local_splitter must be %q or %q (got %q)", SplitterHeuristic, SplitterPunkt, l.LocalSplitter)
	}

	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2] (got %v)", l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	return nil
}

func (s *StudyConfig) validate() error {
	if s.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", s.SessionTTL)
	}
	if s.JanitorInterval <= 0 {
		return fmt.Errorf("janitor_interval must be > 0 (got %v)", s.JanitorInterval)
	}
	if s.MaxSessions <= 0 {
		return fmt.Errorf("max_sessions must be > 0 (got %d)", s.MaxSessions)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	if s.MaxSentences <= 0 {
		return fmt.Errorf("max_sentences must be > 0 (got %d)", s.MaxSentences)
	}
	return nil
}
