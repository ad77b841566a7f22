package prompt

import (
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

// analysisDocumentLimit is the hard cap on solicitation text embedded in an
// analysis prompt. Longer documents are truncated silently.
const analysisDocumentLimit = 4000

const generalSystemPrompt = `You are an expert proposal writer with deep experience in government and commercial contracting. You write clear, compelling, compliant proposal content. Use professional business language, concrete specifics over generalities, and active voice. Respond with the requested content only, no preamble.`

const technicalApproachSystemPrompt = `You are a senior technical proposal writer. You translate complex engineering solutions into clear, evaluator-friendly prose. Describe the solution architecture, methodology, and risk mitigations in concrete terms, tie every claim to a benefit for the customer, and keep the structure easy to score against evaluation criteria. Respond with the requested content only, no preamble.`

const managementPlanSystemPrompt = `You are a proposal writer specializing in management plans. You describe organizational structures, staffing approaches, communication cadences, and quality/risk management processes in a way evaluators can verify. Name roles and responsibilities explicitly and show how the plan controls cost and schedule. Respond with the requested content only, no preamble.`

const pastPerformanceSystemPrompt = `You are a proposal writer specializing in past performance narratives. You present prior contracts as evidence of capability: scope, relevance, outcomes, and customer satisfaction, with quantified results wherever possible. Draw explicit parallels between prior work and the current requirement. Respond with the requested content only, no preamble.`

const executiveSummarySystemPrompt = `You are a proposal writer specializing in executive summaries. You distill an entire proposal into a persuasive opening: the customer's problem, the offered solution, the key discriminators, and why this team wins. Keep it tight, confident, and benefit-led. Respond with the requested content only, no preamble.`

// SystemPrompt returns the role system-prompt for a content type. The default
// arm makes the mapping total: unrecognized types get the general template.
func SystemPrompt(contentType string) string {
	switch domain.ContentType(contentType) {
	case domain.ContentTechnicalApproach:
		return technicalApproachSystemPrompt
	case domain.ContentManagementPlan:
		return managementPlanSystemPrompt
	case domain.ContentPastPerformance:
		return pastPerformanceSystemPrompt
	case domain.ContentExecutiveSummary:
		return executiveSummarySystemPrompt
	default:
		return generalSystemPrompt
	}
}

// SectionPrompt composes the full user prompt for a section generation call.
// Requirement blocks are appended only when supplied, in a fixed order:
// length, budget, timeline, then evaluation criteria, then past performance.
func SectionPrompt(userPrompt string, hints domain.RequirementHints, contentType string) string {
	var b strings.Builder
	b.WriteString(userPrompt)

	if hints.TargetLength > 0 || hints.Budget != "" || hints.Timeline != "" {
		b.WriteString("\n\nKey Requirements:\n")
		if hints.TargetLength > 0 {
			fmt.Fprintf(&b, "- Target length: %d words\n", hints.TargetLength)
		}
		if hints.Budget != "" {
			fmt.Fprintf(&b, "- Budget: %s\n", hints.Budget)
		}
		if hints.Timeline != "" {
			fmt.Fprintf(&b, "- Timeline: %s\n", hints.Timeline)
		}
	}

	if hints.EvaluationCriteria != "" {
		fmt.Fprintf(&b, "\nEvaluation Criteria:\n%s\n", hints.EvaluationCriteria)
	}

	if hints.PastPerformance != "" {
		fmt.Fprintf(&b, "\nRelevant Past Performance:\n%s\n", hints.PastPerformance)
	}

	fmt.Fprintf(&b, "\nWrite the %s section of the proposal based on the above.", contentType)
	return b.String()
}

// AnalysisPrompt embeds a solicitation document in the fixed seven-point
// analysis instruction. Documents longer than the cap are cut at the cap.
func AnalysisPrompt(document string) string {
	if len(document) > analysisDocumentLimit {
		document = document[:analysisDocumentLimit]
	}
	return fmt.Sprintf(`Analyze the following solicitation document and provide a structured summary covering:

1. Overview: what the customer is buying and why.
2. Technical Requirements: every stated technical requirement, one per line, prefixed with "-".
3. Proposal Sections: the volumes/sections the response must contain.
4. Evaluation Criteria: how submissions will be scored.
5. Compliance: mandatory compliance items, one per line, prefixed with "-".
6. Key Dates: submission deadline and other milestone dates.
7. Recommended Structure: how to organize a winning response.

Solicitation document:
%s`, document)
}

const (
	clarityInstruction    = `Rewrite the following proposal content for clarity. Shorten sentences, remove filler and jargon, prefer active voice, and make every paragraph carry one idea. Preserve all facts and commitments.`
	technicalInstruction  = `Rewrite the following proposal content to strengthen its technical depth. Make the solution concrete: name methods, standards, and measurable outcomes. Remove vague claims or back them with specifics. Preserve the overall structure.`
	persuasiveInstruction = `Rewrite the following proposal content to be more persuasive. Lead with customer benefits, turn features into discriminators, and quantify impact where the source material allows. Keep claims credible and grounded in the original content.`
	complianceInstruction = `Rewrite the following proposal content for compliance tone. Use "shall/will" language consistently, mirror requirement phrasing so evaluators can trace coverage, and flag nothing as assumed that the content does not state. Preserve all facts.`
	generalInstruction    = `Improve the following proposal content. Tighten the writing, fix awkward phrasing, and raise the overall professionalism without changing its meaning.`
)

// ImprovementPrompt selects the rewrite instruction for an improvement type.
// Unknown types fall back to the general instruction.
func ImprovementPrompt(content, improvementType string) string {
	var instruction string
	switch domain.ImprovementType(improvementType) {
	case domain.ImproveClarity:
		instruction = clarityInstruction
	case domain.ImproveTechnical:
		instruction = technicalInstruction
	case domain.ImprovePersuasive:
		instruction = persuasiveInstruction
	case domain.ImproveCompliance:
		instruction = complianceInstruction
	default:
		instruction = generalInstruction
	}
	return fmt.Sprintf("%s\n\nContent to improve:\n%s\n\nReturn only the improved content.", instruction, content)
}

// notSpecified fills empty snapshot fields so the summary template never
// carries an empty slot.
func notSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// ExecutiveSummaryPrompt fills the summary template from a proposal snapshot.
func ExecutiveSummaryPrompt(snapshot domain.ProposalSnapshot) string {
	return fmt.Sprintf(`Write an executive summary for the following proposal.

Project Name: %s
Agency: %s
Requirements: %s
Technical Approach: %s
Past Performance: %s
Management Approach: %s

The summary should open with the customer's need, present the offered solution and its key discriminators, and close with why this team is the low-risk choice. Return only the executive summary text.`,
		notSpecified(snapshot.ProjectName),
		notSpecified(snapshot.Agency),
		notSpecified(snapshot.Requirements),
		notSpecified(snapshot.TechnicalApproach),
		notSpecified(snapshot.PastPerformance),
		notSpecified(snapshot.ManagementApproach),
	)
}
