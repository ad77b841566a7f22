package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
	domset "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
)

type stubGateway struct {
	lastReq   domain.GenerationRequest
	text      string
	err       error
	available bool
	models    []domain.ModelInfo
}

func (s *stubGateway) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubGateway) Probe(ctx context.Context) bool { return s.available }

func (s *stubGateway) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	return s.models, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubPersonas struct {
	def *domset.Persona
	err error
}

func (s *stubPersonas) Save(ctx context.Context, p *domset.Persona) error { return nil }
func (s *stubPersonas) Get(ctx context.Context, id domset.PersonaID) (*domset.Persona, error) {
	return nil, domset.ErrNotFound
}
func (s *stubPersonas) List(ctx context.Context) ([]*domset.Persona, error) { return nil, nil }
func (s *stubPersonas) Default(ctx context.Context) (*domset.Persona, error) {
	return s.def, s.err
}
func (s *stubPersonas) Delete(ctx context.Context, id domset.PersonaID) error { return nil }

func newService(gw *stubGateway) (*Service, time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &Service{
		Gateway: gw,
		Model:   "qwen2.5:14b",
		Clock:   fixedClock{t: now},
	}, now
}

func TestGenerateSectionSamplingAndPrompt(t *testing.T) {
	gw := &stubGateway{text: "Our approach is phased and low risk."}
	svc, now := newService(gw)

	res, err := svc.GenerateSection(context.Background(), GenerateSectionCommand{
		Prompt:      "Describe our approach",
		ContentType: "technical-approach",
		Hints:       domain.RequirementHints{TargetLength: 500},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.7, gw.lastReq.Options.Temperature, 1e-9)
	assert.Equal(t, 2000, gw.lastReq.Options.MaxTokens)
	assert.False(t, gw.lastReq.Stream)
	assert.Contains(t, gw.lastReq.Prompt, "Target length: 500 words")
	assert.Contains(t, gw.lastReq.Prompt, "Describe our approach")

	assert.Equal(t, domain.ContentType("technical-approach"), res.ContentType)
	assert.Equal(t, 7, res.WordCount)
	assert.Equal(t, now, res.GeneratedAt)
	assert.Equal(t, "qwen2.5:14b", res.Model)
	assert.NotEmpty(t, res.ID)
}

func TestGenerateSectionServiceUnavailable(t *testing.T) {
	gw := &stubGateway{err: domain.ErrServiceUnavailable}
	svc, _ := newService(gw)

	_, err := svc.GenerateSection(context.Background(), GenerateSectionCommand{
		Prompt:      "Describe our approach",
		ContentType: "technical-approach",
	})
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)

	assert.False(t, svc.CheckAvailability(context.Background()))
}

func TestGenerateSectionGatewayErrorPropagates(t *testing.T) {
	gwErr := &domain.GatewayError{Op: "generate", Err: assert.AnError}
	gw := &stubGateway{err: gwErr}
	svc, _ := newService(gw)

	_, err := svc.GenerateSection(context.Background(), GenerateSectionCommand{Prompt: "p"})
	var got *domain.GatewayError
	require.ErrorAs(t, err, &got)
	assert.Same(t, gwErr, got)
}

func TestAnalyzeSolicitationExtractsRequirements(t *testing.T) {
	gw := &stubGateway{text: "Technical Requirements:\n- must support X\nCompliance:\n- must comply with Y"}
	svc, now := newService(gw)

	res, err := svc.AnalyzeSolicitation(context.Background(), "RFP text")
	require.NoError(t, err)

	assert.InDelta(t, 0.3, gw.lastReq.Options.Temperature, 1e-9)
	assert.Equal(t, 1500, gw.lastReq.Options.MaxTokens)
	assert.Contains(t, gw.lastReq.Prompt, "RFP text")

	assert.Equal(t, []string{"must support X"}, res.Requirements.Technical)
	assert.Equal(t, []string{"must comply with Y"}, res.Requirements.Compliance)
	assert.Nil(t, res.Requirements.Timeline)
	assert.Equal(t, now, res.AnalyzedAt)
	assert.Equal(t, gw.text, res.Raw)
}

func TestImproveContentSampling(t *testing.T) {
	gw := &stubGateway{text: "Improved."}
	svc, now := newService(gw)

	res, err := svc.ImproveContent(context.Background(), ImproveContentCommand{
		Content:         "Original text.",
		ImprovementType: "clarity",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, gw.lastReq.Options.Temperature, 1e-9)
	assert.Equal(t, 2000, gw.lastReq.Options.MaxTokens)
	assert.Contains(t, gw.lastReq.Prompt, "Original text.")

	assert.Equal(t, "Original text.", res.Original)
	assert.Equal(t, "Improved.", res.Improved)
	assert.Equal(t, domain.ImprovementType("clarity"), res.ImprovementType)
	assert.Equal(t, now, res.ImprovedAt)
}

func TestGenerateExecutiveSummarySampling(t *testing.T) {
	gw := &stubGateway{text: "Summary."}
	svc, now := newService(gw)

	snapshot := domain.ProposalSnapshot{ProjectName: "Sentinel", Agency: "GSA"}
	res, err := svc.GenerateExecutiveSummary(context.Background(), snapshot)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, gw.lastReq.Options.Temperature, 1e-9)
	assert.Equal(t, 1200, gw.lastReq.Options.MaxTokens)
	assert.Contains(t, gw.lastReq.Prompt, "Sentinel")

	assert.Equal(t, snapshot, res.Snapshot)
	assert.Equal(t, "Summary.", res.Summary)
	assert.Equal(t, now, res.GeneratedAt)
}

func TestPersonaOverridesSystemPrompt(t *testing.T) {
	gw := &stubGateway{text: "ok"}
	svc, _ := newService(gw)
	svc.Personas = &stubPersonas{def: &domset.Persona{
		ID:           "p1",
		Name:         "Capture Lead",
		SystemPrompt: "You are the capture lead for this pursuit.",
		IsDefault:    true,
	}}

	_, err := svc.GenerateSection(context.Background(), GenerateSectionCommand{
		Prompt:      "Describe our approach",
		ContentType: "technical-approach",
	})
	require.NoError(t, err)
	assert.Contains(t, gw.lastReq.Prompt, "You are the capture lead for this pursuit.")
}

func TestPersonaLookupFailureFallsBack(t *testing.T) {
	gw := &stubGateway{text: "ok"}
	svc, _ := newService(gw)
	svc.Personas = &stubPersonas{err: domset.ErrNotFound}

	_, err := svc.GenerateSection(context.Background(), GenerateSectionCommand{
		Prompt:      "Describe our approach",
		ContentType: "technical-approach",
	})
	require.NoError(t, err)
	assert.Contains(t, gw.lastReq.Prompt, "technical proposal writer")
}

func TestListModelsPassThrough(t *testing.T) {
	gw := &stubGateway{models: []domain.ModelInfo{{Name: "qwen2.5:14b"}}}
	svc, _ := newService(gw)

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "qwen2.5:14b", models[0].Name)
}

func TestWordCountConvention(t *testing.T) {
	// Empty and all-whitespace text count as zero words.
	assert.Equal(t, 0, wordCount(""))
	assert.Equal(t, 0, wordCount("   \n\t "))
	assert.Equal(t, 1, wordCount("word"))
	assert.Equal(t, 3, wordCount("  one\ttwo\nthree  "))
}
