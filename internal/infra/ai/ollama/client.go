package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"syscall"
	"time"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

const (
	generateTimeout = 60 * time.Second
	probeTimeout    = 5 * time.Second
)

// Client talks to an Ollama server over its native HTTP API. It holds only
// the base URL and default model, so it is safe for concurrent use.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	probe   *http.Client
}

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: generateTimeout},
		probe:   &http.Client{Timeout: probeTimeout},
	}
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Content  string `json:"content"`
}

// Generate issues one synchronous generation call. Connection refusal maps to
// ErrServiceUnavailable; every other transport or protocol failure maps to a
// GatewayError wrapping the cause. An empty but well-formed response body is
// returned as "" without error.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: req.Options.Temperature,
			TopP:        req.Options.TopP,
			NumPredict:  req.Options.MaxTokens,
		},
	})
	if err != nil {
		return "", &domain.GatewayError{Op: "encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &domain.GatewayError{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return "", domain.ErrServiceUnavailable
		}
		return "", &domain.GatewayError{Op: "generate", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &domain.GatewayError{
			Op:  "generate",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &domain.GatewayError{Op: "decode response", Err: err}
	}

	if out.Response != "" {
		return out.Response, nil
	}
	return out.Content, nil
}

// Probe checks the catalog endpoint with a short timeout. Any failure
// (refusal, timeout, non-2xx) collapses to false; it never returns an error.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

type tagsResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		Size       int64     `json:"size"`
		ModifiedAt time.Time `json:"modified_at"`
	} `json:"models"`
}

// ListModels fetches the installed-model catalog. Failures are logged and
// yield an empty slice; the call is best-effort.
func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		log.Printf("ollama list models: build request: %v", err)
		return []domain.ModelInfo{}, nil
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		log.Printf("ollama list models: %v", err)
		return []domain.ModelInfo{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ollama list models: unexpected status %d", resp.StatusCode)
		return []domain.ModelInfo{}, nil
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		log.Printf("ollama list models: decode: %v", err)
		return []domain.ModelInfo{}, nil
	}

	models := make([]domain.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, domain.ModelInfo{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return models, nil
}
