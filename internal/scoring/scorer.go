package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/candidate"
	"github.com/spigell/resume-ranker/internal/job"
)

// Breakdown carries the four unweighted sub-scores (each 0-100) and the
// weighted total for one candidate. Produced once, never mutated.
type Breakdown struct {
	Skills      float64 `json:"skills"`
	Experience  float64 `json:"experience"`
	Relevance   float64 `json:"relevance"`
	Education   float64 `json:"education"`
	Total       float64 `json:"total"`
	Explanation string  `json:"explanation"`
}

// relevantTitleKeywords marks a work history title as relevant to a software
// role. Counting keywords keeps the scorer free of external calls.
var relevantTitleKeywords = []string{
	"software", "developer", "engineer", "programmer", "full-stack",
	"fullstack", "backend", "frontend", "web", "devops", "architect",
}

// Education tiers, highest first. The first tier whose criterion matches
// wins; candidates without any education record score the tier-5 fallback.
const (
	tierTopField     = 100
	tierRelatedField = 80
	tierStemField    = 60
	tierAnyDegree    = 40
	tierNoEducation  = 30
)

var (
	topFields     = []string{"computer science", "software engineering"}
	relatedFields = []string{"information technology", "data science", "electrical engineering"}
	stemKeywords  = []string{"engineering", "science", "mathematics", "physics"}
)

// Scorer computes deterministic score breakdowns against a fixed job
// requirement. It performs no I/O.
type Scorer struct {
	requirement *job.Requirement
	weights     job.Weights
}

// New builds a Scorer. The weights invariant (sum == 1.0) is asserted here so
// a misconfigured weight split never reaches scoring.
func New(requirement *job.Requirement, weights job.Weights) (*Scorer, error) {
	if err := requirement.Validate(); err != nil {
		return nil, fmt.Errorf("job requirement: %w", err)
	}

	if weights.IsZero() {
		weights = job.DefaultWeights()
	}

	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}

	return &Scorer{requirement: requirement, weights: weights}, nil
}

// Score maps a candidate record and its skill match onto a breakdown. Pure
// and deterministic: equal inputs always produce equal outputs.
func (s *Scorer) Score(record *candidate.Record, match *ai.SkillMatch) *Breakdown {
	if match == nil {
		match = &ai.SkillMatch{Missing: s.requirement.RequiredSkills}
	}

	skills := s.skillsScore(match)
	experience, expNote := s.experienceScore(record.TotalYears())
	relevance, relNote := s.relevanceScore(record.Experience)
	education := s.educationScore(record.Education)

	total := round2(skills*s.weights.Skills +
		experience*s.weights.Experience +
		relevance*s.weights.Relevance +
		education*s.weights.Education)

	explanation := fmt.Sprintf("Skills: %d/%d matched. %s. %s.",
		len(match.Matched), len(s.requirement.RequiredSkills), expNote, relNote)

	return &Breakdown{
		Skills:      skills,
		Experience:  experience,
		Relevance:   relevance,
		Education:   education,
		Total:       total,
		Explanation: explanation,
	}
}

func (s *Scorer) skillsScore(match *ai.SkillMatch) float64 {
	required := len(s.requirement.RequiredSkills)
	if required == 0 {
		return 100
	}

	return round2(float64(len(match.Matched)) / float64(required) * 100)
}

func (s *Scorer) experienceScore(totalYears float64) (float64, string) {
	required := s.requirement.RequiredYears
	if required == 0 {
		return 100, "no experience requirement"
	}

	if totalYears <= 0 {
		return 0, "no experience listed"
	}

	if totalYears < required {
		return round2(totalYears / required * 100),
			fmt.Sprintf("%.1fy (need %v+)", totalYears, required)
	}

	return 100, fmt.Sprintf("%.1fy (meets %v+ req)", totalYears, required)
}

func (s *Scorer) relevanceScore(experience []candidate.WorkExperience) (float64, string) {
	total := len(experience)
	if total == 0 {
		return 100, "no work history"
	}

	relevant := 0
	for _, exp := range experience {
		title := strings.ToLower(exp.Title)
		for _, keyword := range relevantTitleKeywords {
			if strings.Contains(title, keyword) {
				relevant++
				break
			}
		}
	}

	return round2(float64(relevant) / float64(total) * 100),
		fmt.Sprintf("%d/%d relevant roles", relevant, total)
}

func (s *Scorer) educationScore(education []candidate.Education) float64 {
	if len(education) == 0 {
		return tierNoEducation
	}

	best := float64(tierAnyDegree)
	for _, edu := range education {
		if tier := fieldTier(edu.Field); tier > best {
			best = tier
		}
	}

	return best
}

func fieldTier(field string) float64 {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return tierAnyDegree
	}

	for _, top := range topFields {
		if strings.Contains(field, top) {
			return tierTopField
		}
	}

	for _, related := range relatedFields {
		if strings.Contains(field, related) {
			return tierRelatedField
		}
	}

	for _, keyword := range stemKeywords {
		if strings.Contains(field, keyword) {
			return tierStemField
		}
	}

	return tierAnyDegree
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
