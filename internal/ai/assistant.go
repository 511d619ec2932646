package ai

import (
	"context"
	"strings"

	"github.com/spigell/resume-ranker/internal/candidate"
)

// SkillMatch describes which required skills a candidate satisfies. Matched
// and Missing together always cover the required skill set exactly and never
// overlap.
type SkillMatch struct {
	Matched   []string `json:"matched_skills"`
	Missing   []string `json:"missing_skills"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// Extractor turns raw resume text into a structured candidate record.
type Extractor interface {
	Extract(ctx context.Context, text string) (*candidate.Record, error)
}

// SkillMatcher maps the candidate's free-text skills onto the closed set of
// required skill labels.
type SkillMatcher interface {
	Match(ctx context.Context, candidateSkills, requiredSkills []string) (*SkillMatch, error)
}

// NewSkillMatch builds a validated SkillMatch from the required set and a raw
// matched list. Labels outside the required set are discarded and returned so
// the caller can log them. Matched keeps the order of the required set.
func NewSkillMatch(required, matched []string) (*SkillMatch, []string) {
	allowed := make(map[string]struct{}, len(required))
	for _, skill := range required {
		allowed[skill] = struct{}{}
	}

	accepted := make(map[string]struct{}, len(matched))
	var dropped []string
	for _, skill := range matched {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if _, ok := allowed[skill]; !ok {
			if skill != "" {
				dropped = append(dropped, skill)
			}
			continue
		}
		accepted[skill] = struct{}{}
	}

	match := &SkillMatch{
		Matched: make([]string, 0, len(accepted)),
		Missing: make([]string, 0, len(required)-len(accepted)),
	}

	for _, skill := range required {
		if _, ok := accepted[skill]; ok {
			match.Matched = append(match.Matched, skill)
		} else {
			match.Missing = append(match.Missing, skill)
		}
	}

	return match, dropped
}

// ExactSkillMatch intersects candidate skills with required skills without any
// semantic interpretation. It is the fallback when the matcher is unavailable.
func ExactSkillMatch(candidateSkills, required []string) *SkillMatch {
	lowered := make([]string, 0, len(candidateSkills))
	for _, skill := range candidateSkills {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(skill)))
	}

	match, _ := NewSkillMatch(required, lowered)
	match.Reasoning = "exact match fallback"
	return match
}
