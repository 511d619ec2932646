package scoring

import (
	"fmt"
	"testing"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/candidate"
	"github.com/spigell/resume-ranker/internal/job"
)

func newTestScorer(t *testing.T, req *job.Requirement) *Scorer {
	t.Helper()

	req.Normalize()
	scorer, err := New(req, job.DefaultWeights())
	if err != nil {
		t.Fatalf("building scorer: %v", err)
	}
	return scorer
}

func matchOf(t *testing.T, scorer *Scorer, matched ...string) *ai.SkillMatch {
	t.Helper()

	match, dropped := ai.NewSkillMatch(scorer.requirement.RequiredSkills, matched)
	if len(dropped) > 0 {
		t.Fatalf("test match contains labels outside the required set: %v", dropped)
	}
	return match
}

func TestSkillsScoreExactFraction(t *testing.T) {
	required := []string{"a", "b", "c", "d"}

	for matchedCount := 0; matchedCount <= len(required); matchedCount++ {
		t.Run(fmt.Sprintf("%d of %d", matchedCount, len(required)), func(t *testing.T) {
			scorer := newTestScorer(t, &job.Requirement{
				Title:          "Software Engineer",
				RequiredSkills: required,
			})

			match := matchOf(t, scorer, required[:matchedCount]...)
			breakdown := scorer.Score(&candidate.Record{}, match)

			want := round2(float64(matchedCount) / float64(len(required)) * 100)
			if breakdown.Skills != want {
				t.Fatalf("expected skills score %v, got %v", want, breakdown.Skills)
			}
		})
	}
}

func TestSkillsScoreEmptyRequiredSet(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{Title: "Software Engineer"})

	breakdown := scorer.Score(&candidate.Record{}, &ai.SkillMatch{})
	if breakdown.Skills != 100 {
		t.Fatalf("expected 100 for an empty required set, got %v", breakdown.Skills)
	}
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		years float64
		want  float64
	}{
		{years: 1.5, want: 50},
		{years: 3, want: 100},
		{years: 10, want: 100}, // capped, never exceeds 100
		{years: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v years", tt.years), func(t *testing.T) {
			scorer := newTestScorer(t, &job.Requirement{
				Title:         "Software Engineer",
				RequiredYears: 3,
			})

			record := &candidate.Record{}
			if tt.years > 0 {
				record.Experience = []candidate.WorkExperience{{Title: "Engineer", Years: tt.years}}
			}

			breakdown := scorer.Score(record, &ai.SkillMatch{})
			if breakdown.Experience != tt.want {
				t.Fatalf("expected experience score %v, got %v", tt.want, breakdown.Experience)
			}
		})
	}
}

func TestExperienceScoreNoRequirement(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{Title: "Intern Coordinator"})

	breakdown := scorer.Score(&candidate.Record{}, &ai.SkillMatch{})
	if breakdown.Experience != 100 {
		t.Fatalf("expected 100 when no experience is required, got %v", breakdown.Experience)
	}
}

func TestRelevanceScoreCountsMatchingTitles(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{Title: "Software Engineer"})

	record := &candidate.Record{
		Experience: []candidate.WorkExperience{
			{Title: "Senior Software Engineer", Years: 2},
			{Title: "Backend Developer", Years: 2},
			{Title: "Sales Manager", Years: 2},
		},
	}

	breakdown := scorer.Score(record, &ai.SkillMatch{})
	if breakdown.Relevance != round2(2.0/3.0*100) {
		t.Fatalf("expected 2/3 relevance, got %v", breakdown.Relevance)
	}
}

func TestRelevanceScoreEmptyHistory(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{Title: "Software Engineer"})

	breakdown := scorer.Score(&candidate.Record{}, &ai.SkillMatch{})
	if breakdown.Relevance != 100 {
		t.Fatalf("expected 100 for empty work history, got %v", breakdown.Relevance)
	}
}

func TestEducationScoreTiers(t *testing.T) {
	tests := []struct {
		name      string
		education []candidate.Education
		want      float64
	}{
		{
			name:      "computer science is tier 1",
			education: []candidate.Education{{Degree: "BS", Field: "Computer Science"}},
			want:      100,
		},
		{
			name:      "software engineering is tier 1",
			education: []candidate.Education{{Degree: "MS", Field: "Software Engineering"}},
			want:      100,
		},
		{
			name:      "data science is tier 2",
			education: []candidate.Education{{Degree: "MS", Field: "Data Science"}},
			want:      80,
		},
		{
			name:      "mechanical engineering is tier 3",
			education: []candidate.Education{{Degree: "BE", Field: "Mechanical Engineering"}},
			want:      60,
		},
		{
			name:      "unrelated degree is tier 4",
			education: []candidate.Education{{Degree: "BA", Field: "History"}},
			want:      40,
		},
		{
			name:      "no education is tier 5",
			education: nil,
			want:      30,
		},
		{
			name: "best tier wins",
			education: []candidate.Education{
				{Degree: "BA", Field: "History"},
				{Degree: "MS", Field: "Computer Science"},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := newTestScorer(t, &job.Requirement{Title: "Software Engineer"})

			breakdown := scorer.Score(&candidate.Record{Education: tt.education}, &ai.SkillMatch{})
			if breakdown.Education != tt.want {
				t.Fatalf("expected education score %v, got %v", tt.want, breakdown.Education)
			}
		})
	}
}

func TestScoreReferenceVector(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{
		Title:          "Software Engineer",
		RequiredYears:  3,
		RequiredSkills: []string{"python", "javascript", "react", "aws", "docker", "git", "sql", "nodejs", "rest apis"},
	})

	match := matchOf(t, scorer, "python", "javascript", "aws", "git", "sql")
	breakdown := scorer.Score(&candidate.Record{}, match)

	if breakdown.Skills != 55.56 {
		t.Fatalf("expected skills score 55.56, got %v", breakdown.Skills)
	}

	// 55.56*0.40 + 0*0.30 + 100*0.20 + 30*0.10
	if breakdown.Total != 45.22 {
		t.Fatalf("expected total 45.22, got %v", breakdown.Total)
	}
}

func TestTotalStaysWithinBounds(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{
		Title:          "Software Engineer",
		RequiredYears:  3,
		RequiredSkills: []string{"python", "sql"},
	})

	empty := scorer.Score(&candidate.Record{
		Experience: []candidate.WorkExperience{{Title: "Chef", Years: 0.1}},
	}, &ai.SkillMatch{})
	if empty.Total < 0 {
		t.Fatalf("total must not be negative, got %v", empty.Total)
	}

	full := scorer.Score(&candidate.Record{
		Experience: []candidate.WorkExperience{{Title: "Software Engineer", Years: 10}},
		Education:  []candidate.Education{{Degree: "BS", Field: "Computer Science"}},
	}, matchOf(t, scorer, "python", "sql"))
	if full.Total > 100 {
		t.Fatalf("total must not exceed 100, got %v", full.Total)
	}
	if full.Total != 100 {
		t.Fatalf("perfect candidate must score 100, got %v", full.Total)
	}
}

func TestScoreNilMatchTreatedAsZeroMatched(t *testing.T) {
	scorer := newTestScorer(t, &job.Requirement{
		Title:          "Software Engineer",
		RequiredSkills: []string{"python", "sql"},
	})

	breakdown := scorer.Score(&candidate.Record{}, nil)
	if breakdown.Skills != 0 {
		t.Fatalf("expected 0 skills score for a nil match, got %v", breakdown.Skills)
	}
}

func TestNewRejectsInvalidWeights(t *testing.T) {
	req := &job.Requirement{Title: "Software Engineer"}

	if _, err := New(req, job.Weights{Skills: 0.9, Experience: 0.9}); err == nil {
		t.Fatal("expected an error for weights not summing to 1.0")
	}
}

func TestNewAppliesDefaultWeights(t *testing.T) {
	scorer, err := New(&job.Requirement{Title: "Software Engineer"}, job.Weights{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scorer.weights != job.DefaultWeights() {
		t.Fatalf("expected default weights, got %+v", scorer.weights)
	}
}
