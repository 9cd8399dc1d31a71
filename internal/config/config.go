package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	LLM       LLMConfig       `yaml:"llm"`
	Study     StudyConfig     `yaml:"study"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the host:port the HTTP server listens on.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LLMConfig holds completion-service settings. An empty API key is a normal
// state: sentence splitting and annotation then fall back to local behaviour.
type LLMConfig struct {
	Provider      string        `yaml:"provider"       env:"LLM_PROVIDER"       env-default:"anthropic"`
	APIKey        string        `yaml:"api_key"        env:"LLM_API_KEY"`
	Model         string        `yaml:"model"          env:"LLM_MODEL"`
	BaseURL       string        `yaml:"base_url"       env:"LLM_BASE_URL"`
	Temperature   float64       `yaml:"temperature"    env:"LLM_TEMPERATURE"    env-default:"0.3"`
	MaxTokens     int           `yaml:"max_tokens"     env:"LLM_MAX_TOKENS"     env-default:"1024"`
	Timeout       time.Duration `yaml:"timeout"        env:"LLM_TIMEOUT"        env-default:"60s"`
	CacheDir      string        `yaml:"cache_dir"      env:"LLM_CACHE_DIR"`
	LocalSplitter string        `yaml:"local_splitter" env:"LLM_LOCAL_SPLITTER" env-default:"heuristic"`
}

// StudyConfig holds session controller settings.
type StudyConfig struct {
	SessionTTL      time.Duration `yaml:"session_ttl"      env:"STUDY_SESSION_TTL"      env-default:"12h"`
	JanitorInterval time.Duration `yaml:"janitor_interval" env:"STUDY_JANITOR_INTERVAL" env-default:"5m"`
	MaxSessions     int           `yaml:"max_sessions"     env:"STUDY_MAX_SESSIONS"     env-default:"1000"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"STUDY_MAX_UPLOAD_BYTES" env-default:"2097152"`
	MaxSentences    int           `yaml:"max_sentences"    env:"STUDY_MAX_SENTENCES"    env-default:"2000"`
}

// RateLimitConfig holds limits for routes that may trigger completion calls.
type RateLimitConfig struct {
	UploadPerMinute int           `yaml:"upload_per_minute" env:"RATE_LIMIT_UPLOAD_PER_MINUTE" env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"1m"`
}

// Provider names understood by the completion package.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Local splitter strategies.
const (
	SplitterHeuristic = "heuristic"
	SplitterPunkt     = "punkt"
)

// ResolveAPIKey returns the configured key, falling back to the provider's
// conventional environment variable.
func (c LLMConfig) ResolveAPIKey() string {
	if key := strings.TrimSpace(c.APIKey); key != "" {
		return key
	}
	switch strings.ToLower(c.Provider) {
	case ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	return ""
}

// ModelName returns the configured model or the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if strings.EqualFold(c.Provider, ProviderOpenAI) {
		return "gpt-4o-mini"
	}
	return "claude-sonnet-4-5"
}
