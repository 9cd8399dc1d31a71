package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/myenglish-study/internal/config"
)

type anthropicClient struct {
	client  anthropic.Client
	cfg     config.LLMConfig
	model   string
	timeout time.Duration
}

func newAnthropicClient(apiKey string, cfg config.LLMConfig) *anthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &anthropicClient{
		client:  anthropic.NewClient(opts...),
		cfg:     cfg,
		model:   cfg.ModelName(),
		timeout: cfg.Timeout,
	}
}

// Complete sends req through the Messages API and returns the concatenated text blocks.
func (c *anthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	req = withDefaults(req, c.cfg)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("anthropic messages: empty response")
	}
	return b.String(), nil
}
