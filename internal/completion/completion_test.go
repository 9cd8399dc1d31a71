package completion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/myenglish-study/internal/config"
)

func testLLMConfig(provider, baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:    provider,
		Model:       "test-model",
		BaseURL:     baseURL,
		Temperature: 0.2,
		MaxTokens:   256,
		Timeout:     5 * time.Second,
	}
}

func TestNew_NoCredential(t *testing.T) {
	t.Parallel()

	c, err := New(testLLMConfig(config.ProviderAnthropic, ""), "  ", slog.Default())
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrNoCredential))
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := New(testLLMConfig("gemini", ""), "key", slog.Default())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoCredential))
}

func TestNew_ProviderClients(t *testing.T) {
	t.Parallel()

	a, err := New(testLLMConfig(config.ProviderAnthropic, ""), "key", slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &anthropicClient{}, a)

	o, err := New(testLLMConfig(config.ProviderOpenAI, ""), "key", slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, o)
}

func TestNew_CacheDirWrapsClient(t *testing.T) {
	t.Parallel()

	cfg := testLLMConfig(config.ProviderOpenAI, "")
	cfg.CacheDir = t.TempDir()

	c, err := New(cfg, "key", slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &cachedCompleter{}, c)
}

func TestAnthropicClient_Complete(t *testing.T) {
	t.Parallel()

	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			http.NotFound(w, r)
			return
		}
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "test-model",
			"content": [{"type": "text", "text": "翻訳: こんにちは\n文法: 挨拶"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 5}
		}`)
	}))
	t.Cleanup(srv.Close)

	c := newAnthropicClient("key", testLLMConfig(config.ProviderAnthropic, srv.URL))
	got, err := c.Complete(context.Background(), Request{System: "be brief", Prompt: "Hello", Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "翻訳: こんにちは\n文法: 挨拶", got)
	assert.Equal(t, "test-model", gjson.Get(body, "model").String())
	assert.Equal(t, int64(256), gjson.Get(body, "max_tokens").Int())
	assert.Equal(t, "be brief", gjson.Get(body, "system.0.text").String())
	assert.Equal(t, "Hello", gjson.Get(body, "messages.0.content.0.text").String())
}

func TestAnthropicClient_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	t.Cleanup(srv.Close)

	c := newAnthropicClient("bad", testLLMConfig(config.ProviderAnthropic, srv.URL))
	_, err := c.Complete(context.Background(), Request{Prompt: "Hello"})
	require.Error(t, err)
}

func TestOpenAIClient_Complete(t *testing.T) {
	t.Parallel()

	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "test-model",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "1. One.\n2. Two."}}]
		}`)
	}))
	t.Cleanup(srv.Close)

	c := newOpenAIClient("key", testLLMConfig(config.ProviderOpenAI, srv.URL+"/v1"))
	got, err := c.Complete(context.Background(), Request{System: "split", Prompt: "One. Two."})

	require.NoError(t, err)
	assert.Equal(t, "1. One.\n2. Two.", got)
	assert.Equal(t, "test-model", gjson.Get(body, "model").String())
	assert.Equal(t, "system", gjson.Get(body, "messages.0.role").String())
	assert.Equal(t, "user", gjson.Get(body, "messages.1.role").String())
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	t.Cleanup(srv.Close)

	c := newOpenAIClient("key", testLLMConfig(config.ProviderOpenAI, srv.URL))
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
}
