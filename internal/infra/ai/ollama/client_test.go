package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

func TestGenerateSendsRequestAndReturnsResponse(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"response": "generated text"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "qwen2.5:14b")
	out, err := c.Generate(context.Background(), domain.GenerationRequest{
		Prompt: "write something",
		Options: domain.SamplingOptions{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   2000,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)

	// default model fills in when the request leaves it empty
	assert.Equal(t, "qwen2.5:14b", got.Model)
	assert.Equal(t, "write something", got.Prompt)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.7, got.Options.Temperature, 1e-9)
	assert.InDelta(t, 0.9, got.Options.TopP, 1e-9)
	assert.Equal(t, 2000, got.Options.NumPredict)
}

func TestGenerateContentFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": "alt field"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	out, err := c.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "alt field", out)
}

func TestGenerateEmptyWellFormedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	out, err := c.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestGenerateNon2xxIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	_, err := c.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	var gw *domain.GatewayError
	require.ErrorAs(t, err, &gw)
	assert.Contains(t, gw.Error(), "404")
}

func TestGenerateMalformedBodyIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	_, err := c.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	var gw *domain.GatewayError
	require.ErrorAs(t, err, &gw)
}

func TestGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "m")
	_, err := c.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestProbe(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/tags", r.URL.Path)
			w.Write([]byte(`{"models":[]}`))
		}))
		defer srv.Close()
		assert.True(t, NewClient(srv.URL, "m").Probe(context.Background()))
	})

	t.Run("non-2xx is false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		assert.False(t, NewClient(srv.URL, "m").Probe(context.Background()))
	})

	t.Run("refused is false, never panics", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()
		assert.False(t, NewClient(url, "m").Probe(context.Background()))
	})
}

func TestListModels(t *testing.T) {
	t.Run("parses catalog", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"models":[{"name":"qwen2.5:14b","size":9000000000},{"name":"llama3.2:3b"}]}`))
		}))
		defer srv.Close()

		models, err := NewClient(srv.URL, "m").ListModels(context.Background())
		require.NoError(t, err)
		require.Len(t, models, 2)
		assert.Equal(t, "qwen2.5:14b", models[0].Name)
		assert.Equal(t, int64(9000000000), models[0].Size)
		assert.Equal(t, "llama3.2:3b", models[1].Name)
	})

	t.Run("failure yields empty slice, no error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		models, err := NewClient(url, "m").ListModels(context.Background())
		require.NoError(t, err)
		assert.Empty(t, models)
		assert.NotNil(t, models)
	})
}
