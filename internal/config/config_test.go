package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// isolateConfigDirs points the user config dir at a fresh temp home.
func isolateConfigDirs(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	return home
}

// clearLLMEnv isolates tests from keys present in the developer's shell.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

log:
  level: "debug"
  format: "text"

llm:
  provider: "openai"
  model: "gpt-4o"
  base_url: "http://localhost:11434/v1"
  temperature: 0.5
  max_tokens: 2048
  timeout: "30s"
  cache_dir: "/tmp/llm-cache"
  local_splitter: "punkt"

study:
  session_ttl: "1h"
  janitor_interval: "1m"
  max_sessions: 50
  max_upload_bytes: 1024
  max_sentences: 100

rate_limit:
  upload_per_minute: 5
`

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		LLM: LLMConfig{
			Provider:      ProviderAnthropic,
			Temperature:   0.3,
			MaxTokens:     1024,
			Timeout:       time.Minute,
			LocalSplitter: SplitterHeuristic,
		},
		Study: StudyConfig{
			SessionTTL:      time.Hour,
			JanitorInterval: time.Minute,
			MaxSessions:     10,
			MaxUploadBytes:  1 << 20,
			MaxSentences:    100,
		},
		RateLimit: RateLimitConfig{UploadPerMinute: 10, CleanupInterval: time.Minute},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// LLM
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("llm.provider = %q, want %q", cfg.LLM.Provider, ProviderOpenAI)
	}
	if cfg.LLM.ModelName() != "gpt-4o" {
		t.Errorf("llm.model = %q, want gpt-4o", cfg.LLM.ModelName())
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("llm.max_tokens = %d, want 2048", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("llm.timeout = %v, want 30s", cfg.LLM.Timeout)
	}
	if cfg.LLM.LocalSplitter != SplitterPunkt {
		t.Errorf("llm.local_splitter = %q, want %q", cfg.LLM.LocalSplitter, SplitterPunkt)
	}

	// Study
	if cfg.Study.SessionTTL != time.Hour {
		t.Errorf("study.session_ttl = %v, want 1h", cfg.Study.SessionTTL)
	}
	if cfg.Study.MaxSessions != 50 {
		t.Errorf("study.max_sessions = %d, want 50", cfg.Study.MaxSessions)
	}
	if cfg.Study.MaxUploadBytes != 1024 {
		t.Errorf("study.max_upload_bytes = %d, want 1024", cfg.Study.MaxUploadBytes)
	}

	// Rate limit
	if cfg.RateLimit.UploadPerMinute != 5 {
		t.Errorf("rate_limit.upload_per_minute = %d, want 5", cfg.RateLimit.UploadPerMinute)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LLM_PROVIDER", "anthropic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("llm.provider = %q, want %q (ENV override)", cfg.LLM.Provider, ProviderAnthropic)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CONFIG_PATH", "")
	isolateConfigDirs(t)
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("llm.provider = %q, want %q (default)", cfg.LLM.Provider, ProviderAnthropic)
	}
	if cfg.LLM.LocalSplitter != SplitterHeuristic {
		t.Errorf("llm.local_splitter = %q, want %q (default)", cfg.LLM.LocalSplitter, SplitterHeuristic)
	}
	if cfg.Study.SessionTTL != 12*time.Hour {
		t.Errorf("study.session_ttl = %v, want 12h (default)", cfg.Study.SessionTTL)
	}
	if cfg.LLM.ResolveAPIKey() != "" {
		t.Errorf("api key = %q, want empty", cfg.LLM.ResolveAPIKey())
	}
}

func TestLoad_UserConfigDir(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CONFIG_PATH", "")
	home := isolateConfigDirs(t)
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	userDir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasPrefix(userDir, home) {
		t.Skipf("user config dir %s not under test home", userDir)
	}
	dir := filepath.Join(userDir, appDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeYAML(t, dir, "server:\n  port: 7070\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want 7070 (user config)", cfg.Server.Port)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gemini" }},
		{"unknown splitter", func(c *Config) { c.LLM.LocalSplitter = "nltk" }},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -0.1 }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"max tokens zero", func(c *Config) { c.LLM.MaxTokens = 0 }},
		{"timeout zero", func(c *Config) { c.LLM.Timeout = 0 }},
		{"session ttl zero", func(c *Config) { c.Study.SessionTTL = 0 }},
		{"janitor interval zero", func(c *Config) { c.Study.JanitorInterval = 0 }},
		{"max sessions zero", func(c *Config) { c.Study.MaxSessions = 0 }},
		{"max upload negative", func(c *Config) { c.Study.MaxUploadBytes = -1 }},
		{"max sentences zero", func(c *Config) { c.Study.MaxSentences = 0 }},
		{"upload rate zero", func(c *Config) { c.RateLimit.UploadPerMinute = 0 }},
		{"limiter cleanup zero", func(c *Config) { c.RateLimit.CleanupInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_NormalizesProviderCase(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Provider = " OpenAI "
	cfg.LLM.LocalSplitter = "PUNKT"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want %q", cfg.LLM.Provider, ProviderOpenAI)
	}
	if cfg.LLM.LocalSplitter != SplitterPunkt {
		t.Errorf("local_splitter = %q, want %q", cfg.LLM.LocalSplitter, SplitterPunkt)
	}
}

func TestLLMConfig_ResolveAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")

	tests := []struct {
		name string
		cfg  LLMConfig
		want string
	}{
		{"explicit wins", LLMConfig{Provider: ProviderAnthropic, APIKey: " sk-explicit "}, "sk-explicit"},
		{"anthropic fallback", LLMConfig{Provider: ProviderAnthropic}, "sk-ant"},
		{"openai fallback", LLMConfig{Provider: ProviderOpenAI}, "sk-oai"},
		{"unknown provider", LLMConfig{Provider: "other"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolveAPIKey(); got != tt.want {
				t.Errorf("ResolveAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLLMConfig_ModelName(t *testing.T) {
	if got := (LLMConfig{Provider: ProviderAnthropic}).ModelName(); got != "claude-sonnet-4-5" {
		t.Errorf("anthropic default = %q", got)
	}
	if got := (LLMConfig{Provider: ProviderOpenAI}).ModelName(); got != "gpt-4o-mini" {
		t.Errorf("openai default = %q", got)
	}
	if got := (LLMConfig{Provider: ProviderOpenAI, Model: "custom"}).ModelName(); got != "custom" {
		t.Errorf("explicit model = %q", got)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	got := ServerConfig{Host: "127.0.0.1", Port: 9090}.Addr()
	if got != "127.0.0.1:9090" {
		t.Fatalf("Addr() = %q, want %q", got, "127.0.0.1:9090")
	}
}
