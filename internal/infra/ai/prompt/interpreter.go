package prompt

import (
	"strings"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
)

// ExtractRequirements scans an analysis response line by line and buckets
// bullet items under the most recent category header. Header detection is a
// keyword heuristic checked in fixed priority order (technical requirement,
// compliance, deliverable); a line matching several keywords only switches to
// the first. Lines without a hyphen, or seen before any header, are ignored.
// Timeline is never populated by this scan.
func ExtractRequirements(analysis string) domain.ExtractedRequirements {
	out := domain.ExtractedRequirements{
		Technical:    []string{},
		Compliance:   []string{},
		Deliverables: []string{},
	}

	current := ""
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "technical requirement"):
			current = "technical"
		case strings.Contains(lower, "compliance"):
			current = "compliance"
		case strings.Contains(lower, "deliverable"):
			current = "deliverables"
		case strings.Contains(line, "-") && current != "":
			item := strings.TrimSpace(line)
			item = strings.TrimSpace(strings.TrimPrefix(item, "-"))
			switch current {
			case "technical":
				out.Technical = append(out.Technical, item)
			case "compliance":
				out.Compliance = append(out.Compliance, item)
			case "deliverables":
				out.Deliverables = append(out.Deliverables, item)
			}
		}
	}

	return out
}
