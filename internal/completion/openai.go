package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/heartmarshall/myenglish-study/internal/config"
)

type openAIClient struct {
	client  openai.Client
	cfg     config.LLMConfig
	model   string
	timeout time.Duration
}

func newOpenAIClient(apiKey string, cfg config.LLMConfig) *openAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIClient{
		client:  openai.NewClient(opts...),
		cfg:     cfg,
		model:   cfg.ModelName(),
		timeout: cfg.Timeout,
	}
}

// Complete sends req as a chat completion and returns the first choice.
func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	req = withDefaults(req, c.cfg)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       shared.ChatModel(c.model),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai chat completion: empty response")
	}
	return completion.Choices[0].Message.Content, nil
}
