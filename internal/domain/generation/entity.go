package generation

import (
	"time"
)

// ID tipe untuk generated records
type ResultID string

// ContentType enum
type ContentType string

const (
	ContentTechnicalApproach ContentType = "technical-approach"
	ContentManagementPlan    ContentType = "management-plan"
	ContentPastPerformance   ContentType = "past-performance"
	ContentExecutiveSummary  ContentType = "executive-summary"
	ContentGeneral           ContentType = "general"
)

// ImprovementType enum
type ImprovementType string

const (
	ImproveClarity    ImprovementType = "clarity"
	ImproveTechnical  ImprovementType = "technical"
	ImprovePersuasive ImprovementType = "persuasive"
	ImproveCompliance ImprovementType = "compliance"
	ImproveGeneral    ImprovementType = "general"
)

// SamplingOptions value object sent with every inference call
type SamplingOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

// GenerationRequest is built fresh per call and never persisted
type GenerationRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options SamplingOptions `json:"options"`
}

// RequirementHints carries optional caller-supplied constraints for a section.
// Zero values mean "not supplied".
type RequirementHints struct {
	TargetLength       int    `json:"target_length,omitempty"`
	Budget             string `json:"budget,omitempty"`
	Timeline           string `json:"timeline,omitempty"`
	EvaluationCriteria string `json:"evaluation_criteria,omitempty"`
	PastPerformance    string `json:"past_performance,omitempty"`
}

// ProposalSnapshot is the source data an executive summary is written from.
type ProposalSnapshot struct {
	ProjectName        string `json:"project_name,omitempty"`
	Agency             string `json:"agency,omitempty"`
	Requirements       string `json:"requirements,omitempty"`
	TechnicalApproach  string `json:"technical_approach,omitempty"`
	PastPerformance    string `json:"past_performance,omitempty"`
	ManagementApproach string `json:"management_approach,omitempty"`
}

// GenerationResult is the record returned for a generated section
type GenerationResult struct {
	ID          ResultID    `json:"id"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	WordCount   int         `json:"word_count"`
	GeneratedAt time.Time   `json:"generated_at"`
	Model       string      `json:"model"`
	ArchiveURL  string      `json:"archive_url,omitempty"`
}

// ExtractedRequirements holds the categorized requirement buckets pulled out
// of an analysis response. Category slices are never nil; Timeline is the one
// nullable field.
type ExtractedRequirements struct {
	Technical    []string `json:"technical"`
	Compliance   []string `json:"compliance"`
	Deliverables []string `json:"deliverables"`
	Timeline     *string  `json:"timeline"`
}

// SolicitationAnalysis wraps the raw analysis text plus extracted structure
type SolicitationAnalysis struct {
	ID           ResultID              `json:"id"`
	Raw          string                `json:"raw"`
	Requirements ExtractedRequirements `json:"requirements"`
	AnalyzedAt   time.Time             `json:"analyzed_at"`
	Model        string                `json:"model"`
}

// ContentImprovementResult pairs the original text with its rewrite
type ContentImprovementResult struct {
	ID              ResultID        `json:"id"`
	Original        string          `json:"original"`
	Improved        string          `json:"improved"`
	ImprovementType ImprovementType `json:"improvement_type"`
	ImprovedAt      time.Time       `json:"improved_at"`
	Model           string          `json:"model"`
}

// ExecutiveSummaryResult carries the summary plus the snapshot it came from
type ExecutiveSummaryResult struct {
	ID          ResultID         `json:"id"`
	Summary     string           `json:"summary"`
	Snapshot    ProposalSnapshot `json:"snapshot"`
	GeneratedAt time.Time        `json:"generated_at"`
	Model       string           `json:"model"`
	ArchiveURL  string           `json:"archive_url,omitempty"`
}

// ModelInfo describes one installed model in the serving catalog
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}
