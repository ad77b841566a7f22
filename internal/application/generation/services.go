package generation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
	personas "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
	"github.com/bryanwahyu/proposal-ai/internal/infra/ai/prompt"
)

// Fixed sampling parameters per operation; callers cannot tune these.
const (
	sectionTemperature  = 0.7
	sectionMaxTokens    = 2000
	analysisTemperature = 0.3
	analysisMaxTokens   = 1500
	improveTemperature  = 0.5
	improveMaxTokens    = 2000
	summaryTemperature  = 0.6
	summaryMaxTokens    = 1200
	defaultTopP         = 0.9
)

// Service implements use-cases untuk AI generation
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Gateway  domain.Gateway
	Personas personas.PersonaRepository // optional; nil disables persona prompts
	Archive  domain.ArchiveStore        // optional; nil disables archiving
	Model    string
	Clock    Clock
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

//
// ==== USE CASES ====
//

// Command untuk generate section
type GenerateSectionCommand struct {
	Prompt      string
	ContentType string
	Hints       domain.RequirementHints
}

// GenerateSection composes a section prompt, runs one generation call, and
// wraps the text into an immutable result record. Gateway failures propagate
// unchanged after being logged.
func (s *Service) GenerateSection(ctx context.Context, cmd GenerateSectionCommand) (*domain.GenerationResult, error) {
	log.Printf("generation start op=section content_type=%s", cmd.ContentType)

	full := s.systemPrompt(ctx, cmd.ContentType) + "\n\n" + prompt.SectionPrompt(cmd.Prompt, cmd.Hints, cmd.ContentType)

	text, err := s.Gateway.Generate(ctx, domain.GenerationRequest{
		Model:  s.Model,
		Prompt: full,
		Stream: false,
		Options: domain.SamplingOptions{
			Temperature: sectionTemperature,
			TopP:        defaultTopP,
			MaxTokens:   sectionMaxTokens,
		},
	})
	if err != nil {
		log.Printf("generation failed op=section err=%v", err)
		return nil, err
	}

	id := domain.ResultID(uuid.New().String())
	res := &domain.GenerationResult{
		ID:          id,
		Content:     text,
		ContentType: domain.ContentType(cmd.ContentType),
		WordCount:   wordCount(text),
		GeneratedAt: s.Clock.Now(),
		Model:       s.Model,
		ArchiveURL:  s.archive(ctx, fmt.Sprintf("sections/%s.md", id), text),
	}

	log.Printf("generation done op=section words=%d", res.WordCount)
	return res, nil
}

// AnalyzeSolicitation runs the analysis prompt over a solicitation document
// and extracts categorized requirements from the response.
func (s *Service) AnalyzeSolicitation(ctx context.Context, document string) (*domain.SolicitationAnalysis, error) {
	log.Printf("generation start op=analyze doc_chars=%d", len(document))

	text, err := s.Gateway.Generate(ctx, domain.GenerationRequest{
		Model:  s.Model,
		Prompt: prompt.AnalysisPrompt(document),
		Stream: false,
		Options: domain.SamplingOptions{
			Temperature: analysisTemperature,
			TopP:        defaultTopP,
			MaxTokens:   analysisMaxTokens,
		},
	})
	if err != nil {
		log.Printf("generation failed op=analyze err=%v", err)
		return nil, err
	}

	res := &domain.SolicitationAnalysis{
		ID:           domain.ResultID(uuid.New().String()),
		Raw:          text,
		Requirements: prompt.ExtractRequirements(text),
		AnalyzedAt:   s.Clock.Now(),
		Model:        s.Model,
	}

	log.Printf("generation done op=analyze chars=%d", len(text))
	return res, nil
}

// Command untuk improve content
type ImproveContentCommand struct {
	Content         string
	ImprovementType string
}

// ImproveContent rewrites existing content under one of the fixed improvement
// instructions.
func (s *Service) ImproveContent(ctx context.Context, cmd ImproveContentCommand) (*domain.ContentImprovementResult, error) {
	log.Printf("generation start op=improve type=%s", cmd.ImprovementType)

	text, err := s.Gateway.Generate(ctx, domain.GenerationRequest{
		Model:  s.Model,
		Prompt: prompt.ImprovementPrompt(cmd.Content, cmd.ImprovementType),
		Stream: false,
		Options: domain.SamplingOptions{
			Temperature: improveTemperature,
			TopP:        defaultTopP,
			MaxTokens:   improveMaxTokens,
		},
	})
	if err != nil {
		log.Printf("generation failed op=improve err=%v", err)
		return nil, err
	}

	res := &domain.ContentImprovementResult{
		ID:              domain.ResultID(uuid.New().String()),
		Original:        cmd.Content,
		Improved:        text,
		ImprovementType: domain.ImprovementType(cmd.ImprovementType),
		ImprovedAt:      s.Clock.Now(),
		Model:           s.Model,
	}

	log.Printf("generation done op=improve chars=%d", len(text))
	return res, nil
}

// GenerateExecutiveSummary writes a summary from a proposal-data snapshot.
func (s *Service) GenerateExecutiveSummary(ctx context.Context, snapshot domain.ProposalSnapshot) (*domain.ExecutiveSummaryResult, error) {
	log.Printf("generation start op=summary project=%q", snapshot.ProjectName)

	full := prompt.SystemPrompt(string(domain.ContentExecutiveSummary)) + "\n\n" + prompt.ExecutiveSummaryPrompt(snapshot)

	text, err := s.Gateway.Generate(ctx, domain.GenerationRequest{
		Model:  s.Model,
		Prompt: full,
		Stream: false,
		Options: domain.SamplingOptions{
			Temperature: summaryTemperature,
			TopP:        defaultTopP,
			MaxTokens:   summaryMaxTokens,
		},
	})
	if err != nil {
		log.Printf("generation failed op=summary err=%v", err)
		return nil, err
	}

	id := domain.ResultID(uuid.New().String())
	res := &domain.ExecutiveSummaryResult{
		ID:          id,
		Summary:     text,
		Snapshot:    snapshot,
		GeneratedAt: s.Clock.Now(),
		Model:       s.Model,
		ArchiveURL:  s.archive(ctx, fmt.Sprintf("summaries/%s.md", id), text),
	}

	log.Printf("generation done op=summary chars=%d", len(text))
	return res, nil
}

// CheckAvailability reports whether the inference server is reachable.
// It never fails.
func (s *Service) CheckAvailability(ctx context.Context) bool {
	return s.Gateway.Probe(ctx)
}

// ListModels returns the installed-model catalog, empty on failure.
func (s *Service) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	return s.Gateway.ListModels(ctx)
}

// systemPrompt prefers the default persona's prompt when one is configured;
// any lookup failure falls back to the built-in role templates.
func (s *Service) systemPrompt(ctx context.Context, contentType string) string {
	if s.Personas != nil {
		p, err := s.Personas.Default(ctx)
		if err == nil && p != nil && strings.TrimSpace(p.SystemPrompt) != "" {
			return p.SystemPrompt
		}
	}
	return prompt.SystemPrompt(contentType)
}

// archive stores generated text best-effort; failures are logged, never
// propagated.
func (s *Service) archive(ctx context.Context, key, content string) string {
	if s.Archive == nil || content == "" {
		return ""
	}
	url, err := s.Archive.Archive(ctx, key, content)
	if err != nil {
		log.Printf("archive failed key=%s err=%v", key, err)
		return ""
	}
	return url
}

// wordCount counts whitespace-separated tokens. Empty or all-whitespace text
// counts as zero words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}
