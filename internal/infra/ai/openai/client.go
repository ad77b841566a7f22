package openai

import (
	"context"
	"errors"
	"log"
	"strings"
	"syscall"
	"time"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

const probeTimeout = 5 * time.Second

// Client implements the generation Gateway over an OpenAI-compatible chat
// completion API. Ollama exposes one at <base>/v1, so this adapter also
// covers hosted providers with the same wire format.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(req.Options.Temperature),
		TopP:        float32(req.Options.TopP),
		MaxTokens:   req.Options.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return "", domain.ErrServiceUnavailable
		}
		return "", &domain.GatewayError{Op: "chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	_, err := c.api.ListModels(ctx)
	return err == nil
}

func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		log.Printf("openai list models: %v", err)
		return []domain.ModelInfo{}, nil
	}
	models := make([]domain.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, domain.ModelInfo{
			Name:       m.ID,
			ModifiedAt: time.Unix(m.CreatedAt, 0),
		})
	}
	return models, nil
}
