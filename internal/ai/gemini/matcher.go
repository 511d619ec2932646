package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultMaxLogLength = 200

const matcherPrompt = `You are a skill matching system. Analyze candidate skills and return which required skills they satisfy.

REQUIRED SKILLS (you can ONLY return skills from this exact list):
%s

CANDIDATE'S SKILLS:
%s

Rules:
1. You can ONLY return skills that exist EXACTLY in the REQUIRED SKILLS list above
2. A candidate skill satisfies a required skill if it is the same OR a related framework/tool:
   - "Flask", "Django" satisfy "python"
   - "React Native", "TypeScript" satisfy "javascript"
   - "PostgreSQL", "MySQL" satisfy "sql"
   - "EC2", "S3", "Lambda" satisfy "aws"
   - "GitHub", "GitLab" satisfy "git"
3. Be strict but fair`

// Matcher maps candidate skills onto the closed required skill set with a
// single Gemini call. Labels the model invents are dropped locally.
type Matcher struct {
	generator jsonGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewMatcher(generator jsonGenerator, logger *zap.Logger, maxLogLength int) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type matchResponse struct {
	MatchedSkills []string `json:"matched_skills"`
	Reasoning     string   `json:"reasoning"`
}

func (m *Matcher) Match(ctx context.Context, candidateSkills, requiredSkills []string) (*ai.SkillMatch, error) {
	if len(requiredSkills) == 0 {
		return &ai.SkillMatch{Reasoning: "no skills required"}, nil
	}

	if len(candidateSkills) == 0 {
		match, _ := ai.NewSkillMatch(requiredSkills, nil)
		match.Reasoning = "no skills provided"
		return match, nil
	}

	requiredJSON, err := json.Marshal(requiredSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal required skills: %w", err)
	}

	candidateJSON, err := json.Marshal(candidateSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate skills: %w", err)
	}

	prompt := fmt.Sprintf(matcherPrompt, requiredJSON, candidateJSON)

	m.logger.Debug("gemini skill match request",
		zap.Int("required_count", len(requiredSkills)),
		zap.Int("candidate_count", len(candidateSkills)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateJSON(ctx, prompt, matchSchema(requiredSkills))
	if err != nil {
		return nil, fmt.Errorf("matching skills: %w", err)
	}

	m.logger.Debug("gemini skill match response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	var parsed matchResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	match, dropped := ai.NewSkillMatch(requiredSkills, parsed.MatchedSkills)
	if len(dropped) > 0 {
		m.logger.Warn("discarding skill labels outside the required set",
			zap.Strings("labels", dropped),
		)
	}

	match.Reasoning = strings.TrimSpace(parsed.Reasoning)
	return match, nil
}

func matchSchema(requiredSkills []string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matched_skills": {
				Type:        genai.TypeArray,
				Description: "Required skills the candidate satisfies.",
				Items: &genai.Schema{
					Type: genai.TypeString,
					Enum: requiredSkills,
				},
			},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "Brief explanation of the matching decisions.",
			},
		},
		Required: []string{"matched_skills"},
	}
}
