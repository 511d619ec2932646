package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/job"
	"github.com/spigell/resume-ranker/internal/report"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/scoring"
	"go.uber.org/zap"
)

// Deps aggregates the external collaborators of the pipeline.
type Deps struct {
	Extractor ai.Extractor
	Matcher   ai.SkillMatcher
	Logger    *zap.Logger
}

// Pipeline processes resumes sequentially: text extraction, structured
// extraction, skill matching, scoring. A failure in one resume never affects
// the others.
type Pipeline struct {
	requirement *job.Requirement
	scorer      *scoring.Scorer
	deps        Deps

	// extractText is swappable in tests.
	extractText func(path string) (string, error)
}

func New(requirement *job.Requirement, weights job.Weights, deps Deps) (*Pipeline, error) {
	if deps.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	scorer, err := scoring.New(requirement, weights)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		requirement: requirement,
		scorer:      scorer,
		deps:        deps,
		extractText: resume.ExtractText,
	}, nil
}

// Run processes the given resume files and returns a ranked report. Files
// that cannot be read or extracted are recorded as skipped.
func (p *Pipeline) Run(ctx context.Context, files []string) *report.Report {
	result := &report.Report{JobTitle: p.requirement.Title}

	for _, path := range files {
		entry, err := p.processOne(ctx, path)
		if err != nil {
			p.deps.Logger.Warn("skipping resume",
				zap.String("file", path),
				zap.Error(err),
			)
			result.Skip(path, err)
			continue
		}

		p.deps.Logger.Info("scored resume",
			zap.String("file", path),
			zap.String("candidate", entry.CandidateName),
			zap.Float64("total_score", entry.TotalScore),
		)
		result.Append(entry)
	}

	result.Rank()
	return result
}

func (p *Pipeline) processOne(ctx context.Context, path string) (*report.Entry, error) {
	text, err := p.extractText(path)
	if err != nil {
		return nil, err
	}

	p.deps.Logger.Debug("extracted resume text",
		zap.String("file", path),
		zap.Int("characters", len(text)),
	)

	record, err := p.deps.Extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extraction: %w", err)
	}

	match := p.matchSkills(ctx, record.Skills, path)
	breakdown := p.scorer.Score(record, match)

	return &report.Entry{
		FileName:      filepath.Base(path),
		FilePath:      path,
		CandidateName: record.DisplayName(),
		TotalScore:    breakdown.Total,
		Breakdown:     breakdown,
		MatchedSkills: match.Matched,
		MissingSkills: match.Missing,
		SkillReason:   match.Reasoning,
		ExperienceYrs: record.TotalYears(),
	}, nil
}

// matchSkills asks the matcher for the semantic match and degrades to a
// plain intersection when the call fails. A match failure reduces the skills
// sub-score but never drops the candidate.
func (p *Pipeline) matchSkills(ctx context.Context, skills []string, path string) *ai.SkillMatch {
	if p.deps.Matcher == nil {
		return ai.ExactSkillMatch(skills, p.requirement.RequiredSkills)
	}

	match, err := p.deps.Matcher.Match(ctx, skills, p.requirement.RequiredSkills)
	if err != nil {
		p.deps.Logger.Warn("skill matching failed, falling back to exact matching",
			zap.String("file", path),
			zap.Error(err),
		)
		return ai.ExactSkillMatch(skills, p.requirement.RequiredSkills)
	}

	return match
}
