package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

// ValidateContentType checks if the content type is in the allowed list.
// Generation itself falls back to the general template, but handlers can use
// this to reject obvious typos early.
func ValidateContentType(contentType string) error {
	allowed := map[string]bool{
		"technical-approach": true,
		"management-plan":    true,
		"past-performance":   true,
		"executive-summary":  true,
		"general":            true,
	}

	if !allowed[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid content type: %s (allowed: technical-approach, management-plan, past-performance, executive-summary, general)", contentType)
	}
	return nil
}

// ValidateImprovementType checks if the improvement type is in the allowed list
func ValidateImprovementType(improvementType string) error {
	allowed := map[string]bool{
		"clarity":    true,
		"technical":  true,
		"persuasive": true,
		"compliance": true,
		"general":    true,
	}

	if !allowed[strings.ToLower(improvementType)] {
		return fmt.Errorf("invalid improvement type: %s (allowed: clarity, technical, persuasive, compliance, general)", improvementType)
	}
	return nil
}

// ValidateSettingType checks the declared setting value type
func ValidateSettingType(t string) error {
	allowed := map[string]bool{
		"string":  true,
		"number":  true,
		"boolean": true,
		"json":    true,
	}

	if !allowed[strings.ToLower(t)] {
		return fmt.Errorf("invalid setting type: %s (allowed: string, number, boolean, json)", t)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
