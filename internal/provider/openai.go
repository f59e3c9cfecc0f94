package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds model and request settings for the OpenAI adapter.
type OpenAIConfig struct {
	EmbeddingModel  string
	CompletionModel string
	Dimensions      int
	MaxTokens       int
	Temperature     float32
	Timeout         time.Duration
}

// OpenAI implements EmbeddingProvider and CompletionProvider against the
// OpenAI API. Every call runs under the configured deadline so a provider
// outage surfaces as context.DeadlineExceeded instead of hanging the request.
type OpenAI struct {
	client *openai.Client
	cfg    OpenAIConfig
}

// NewOpenAI creates an adapter with the given API key and config.
func NewOpenAI(apiKey string, cfg OpenAIConfig) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = string(openai.AdaEmbeddingV2)
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = openai.GPT4
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = 1536
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAI{client: openai.NewClient(apiKey), cfg: cfg}, nil
}

// Embed returns the embedding for text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, &Error{Op: "embed", Err: fmt.Errorf("cannot embed empty text")}
	}
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(o.cfg.EmbeddingModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, &Error{Op: "embed", Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &Error{Op: "embed", Err: fmt.Errorf("no embedding data returned")}
	}
	emb := resp.Data[0].Embedding
	if len(emb) != o.cfg.Dimensions {
		return nil, &Error{Op: "embed", Err: fmt.Errorf("unexpected dimension: got %d, expected %d", len(emb), o.cfg.Dimensions)}
	}
	return emb, nil
}

// Dimensions returns the embedding dimension of the configured model.
func (o *OpenAI) Dimensions() int {
	return o.cfg.Dimensions
}

// Complete sends a system/user chat and returns the trimmed completion text.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.cfg.CompletionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return "", &Error{Op: "complete", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Op: "complete", Err: fmt.Errorf("no choices returned")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
