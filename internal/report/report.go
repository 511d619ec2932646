package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spigell/resume-ranker/internal/scoring"
)

// Entry is one ranked candidate in the final report.
type Entry struct {
	Rank          int                `json:"rank"`
	FileName      string             `json:"file_name"`
	FilePath      string             `json:"file_path"`
	CandidateName string             `json:"candidate_name"`
	TotalScore    float64            `json:"total_score"`
	Breakdown     *scoring.Breakdown `json:"breakdown"`
	MatchedSkills []string           `json:"matched_skills"`
	MissingSkills []string           `json:"missing_skills"`
	SkillReason   string             `json:"skill_reasoning,omitempty"`
	ExperienceYrs float64            `json:"experience_years"`
}

// Skipped records a resume that could not be processed.
type Skipped struct {
	FilePath string `json:"file_path"`
	Reason   string `json:"reason"`
}

// Report is the final ranked output of one run.
type Report struct {
	JobTitle   string    `json:"job_title"`
	Candidates []*Entry  `json:"candidates"`
	Skipped    []Skipped `json:"skipped,omitempty"`
}

// Append adds a scored candidate. Call Rank afterwards to assign positions.
func (r *Report) Append(entry *Entry) {
	r.Candidates = append(r.Candidates, entry)
}

// Skip records a resume that failed before scoring.
func (r *Report) Skip(path string, err error) {
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	r.Skipped = append(r.Skipped, Skipped{FilePath: path, Reason: reason})
}

// Rank sorts candidates by total score, highest first. The sort is stable so
// candidates with equal scores keep their original input order.
func (r *Report) Rank() {
	sort.SliceStable(r.Candidates, func(i, j int) bool {
		return r.Candidates[i].TotalScore > r.Candidates[j].TotalScore
	})

	for i, entry := range r.Candidates {
		entry.Rank = i + 1
	}
}

// Render writes the human-readable ranking to the provided writer.
func (r *Report) Render(w io.Writer) error {
	if len(r.Candidates) == 0 {
		if _, err := fmt.Fprintln(w, "No resumes were successfully processed."); err != nil {
			return err
		}
		return r.renderSkipped(w)
	}

	if _, err := fmt.Fprintf(w, "FINAL RANKINGS - %s\n", r.JobTitle); err != nil {
		return err
	}

	for _, entry := range r.Candidates {
		fmt.Fprintf(w, "\n%d. %s - Score: %.2f\n", entry.Rank, entry.FileName, entry.TotalScore)
		fmt.Fprintf(w, "   Candidate: %s\n", entry.CandidateName)
		if entry.Breakdown != nil {
			fmt.Fprintf(w, "   %s\n", entry.Breakdown.Explanation)
			fmt.Fprintf(w, "   Breakdown: Skills=%.1f | Experience=%.1f | Relevance=%.1f | Education=%.1f\n",
				entry.Breakdown.Skills, entry.Breakdown.Experience,
				entry.Breakdown.Relevance, entry.Breakdown.Education)
		}
		if len(entry.MatchedSkills) > 0 {
			fmt.Fprintf(w, "   Matched skills: %s\n", strings.Join(entry.MatchedSkills, ", "))
		}
		if len(entry.MissingSkills) > 0 {
			fmt.Fprintf(w, "   Missing skills: %s\n", strings.Join(entry.MissingSkills, ", "))
		}
	}

	return r.renderSkipped(w)
}

func (r *Report) renderSkipped(w io.Writer) error {
	if len(r.Skipped) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nSkipped files:\n"); err != nil {
		return err
	}
	for _, skipped := range r.Skipped {
		if _, err := fmt.Fprintf(w, "   %s: %s\n", skipped.FilePath, skipped.Reason); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile persists the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", path, err)
	}

	return nil
}
