package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgen "github.com/bryanwahyu/proposal-ai/internal/application/generation"
	domgen "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

type stubGateway struct {
	text      string
	err       error
	available bool
}

func (s *stubGateway) Generate(ctx context.Context, req domgen.GenerationRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubGateway) Probe(ctx context.Context) bool { return s.available }

func (s *stubGateway) ListModels(ctx context.Context) ([]domgen.ModelInfo, error) {
	return []domgen.ModelInfo{}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestRouter(gw *stubGateway) http.Handler {
	svc := &appgen.Service{
		Gateway: gw,
		Model:   "qwen2.5:14b",
		Clock:   fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	return NewRouter(svc, nil)
}

func TestGenerateSectionEndpoint(t *testing.T) {
	h := newTestRouter(&stubGateway{text: "Generated section text."})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/sections",
		strings.NewReader(`{"prompt":"Describe our approach","content_type":"technical-approach","hints":{"target_length":500}}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res domgen.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Generated section text.", res.Content)
	assert.Equal(t, 3, res.WordCount)
	assert.Equal(t, domgen.ContentType("technical-approach"), res.ContentType)
}

func TestGenerateSectionRequiresPrompt(t *testing.T) {
	h := newTestRouter(&stubGateway{text: "x"})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/sections", strings.NewReader(`{"prompt":""}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServiceUnavailableMapsTo503(t *testing.T) {
	h := newTestRouter(&stubGateway{err: domgen.ErrServiceUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/sections", strings.NewReader(`{"prompt":"p"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "start the inference service")
}

func TestGatewayErrorMapsTo502(t *testing.T) {
	h := newTestRouter(&stubGateway{err: &domgen.GatewayError{Op: "generate", Err: assert.AnError}})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/improve",
		strings.NewReader(`{"content":"text","improvement_type":"clarity"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStatusEndpointNeverFails(t *testing.T) {
	h := newTestRouter(&stubGateway{available: false})

	req := httptest.NewRequest(http.MethodGet, "/v1/ai/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Available bool               `json:"available"`
		Models    []domgen.ModelInfo `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	assert.NotNil(t, body.Models)
}

func TestAnalyzeEndpointExtractsRequirements(t *testing.T) {
	h := newTestRouter(&stubGateway{
		text: "Technical Requirements:\n- must support X\nDeliverables:\n- monthly report",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/analyze", strings.NewReader(`{"document":"RFP body"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res domgen.SolicitationAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"must support X"}, res.Requirements.Technical)
	assert.Equal(t, []string{"monthly report"}, res.Requirements.Deliverables)
	assert.Nil(t, res.Requirements.Timeline)
}

func TestImproveRejectsUnknownType(t *testing.T) {
	h := newTestRouter(&stubGateway{text: "x"})

	req := httptest.NewRequest(http.MethodPost, "/v1/ai/improve",
		strings.NewReader(`{"content":"text","improvement_type":"sparkle"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid improvement type")
}

func TestSettingsRoutesAbsentWithoutStore(t *testing.T) {
	h := newTestRouter(&stubGateway{text: "x"})

	req := httptest.NewRequest(http.MethodGet, "/v1/settings/default_model", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
