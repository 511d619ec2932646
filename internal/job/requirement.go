package job

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Requirement describes the position candidates are evaluated against.
// It is loaded once from configuration and read-only afterwards.
type Requirement struct {
	Title          string   `mapstructure:"title" json:"title"`
	Description    string   `mapstructure:"description" json:"description"`
	RequiredSkills []string `mapstructure:"required-skills" json:"required_skills"`
	RequiredYears  float64  `mapstructure:"required-years" json:"required_years"`
	Summary        string   `mapstructure:"summary" json:"summary"`
}

// Normalize lowercases and deduplicates the required skills while keeping
// their original order.
func (r *Requirement) Normalize() {
	seen := make(map[string]struct{}, len(r.RequiredSkills))
	normalized := make([]string, 0, len(r.RequiredSkills))

	for _, skill := range r.RequiredSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		normalized = append(normalized, skill)
	}

	r.RequiredSkills = normalized
	r.Title = strings.TrimSpace(r.Title)
}

func (r *Requirement) Validate() error {
	if r == nil {
		return errors.New("job requirement is required")
	}

	if strings.TrimSpace(r.Title) == "" {
		return errors.New("job title is required")
	}

	if r.RequiredYears < 0 {
		return fmt.Errorf("required years must not be negative, got %v", r.RequiredYears)
	}

	return nil
}

// Weights holds the contribution of every sub-score to the total. The values
// must sum to 1.0.
type Weights struct {
	Skills     float64 `mapstructure:"skills" json:"skills"`
	Experience float64 `mapstructure:"experience" json:"experience"`
	Relevance  float64 `mapstructure:"relevance" json:"relevance"`
	Education  float64 `mapstructure:"education" json:"education"`
}

// weightsEpsilon absorbs float literals like 0.2 that do not sum exactly.
const weightsEpsilon = 1e-9

func DefaultWeights() Weights {
	return Weights{
		Skills:     0.40,
		Experience: 0.30,
		Relevance:  0.20,
		Education:  0.10,
	}
}

func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Relevance + w.Education
}

func (w Weights) Validate() error {
	for name, value := range map[string]float64{
		"skills":     w.Skills,
		"experience": w.Experience,
		"relevance":  w.Relevance,
		"education":  w.Education,
	} {
		if value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, value)
		}
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > weightsEpsilon {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}

	return nil
}

// IsZero reports whether no weight is set, meaning defaults should apply.
func (w Weights) IsZero() bool {
	return w.Sum() == 0
}
