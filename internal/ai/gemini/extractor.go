package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-ranker/internal/candidate"
	"github.com/spigell/resume-ranker/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const extractorPrompt = `Analyze this resume and extract structured information.

RESUME TEXT:
%s

Extract all relevant information accurately. For missing fields, use empty
strings or empty lists. For every work experience entry estimate "years" as
the approximate number of years spent in that role. For every education entry
fill "field" with the field of study (e.g. "Computer Science").`

// Extractor converts raw resume text into a structured candidate record via
// a single schema-constrained Gemini call.
type Extractor struct {
	generator jsonGenerator
	logger    *zap.Logger
	maxLogLen int
}

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

func NewExtractor(generator jsonGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Extract returns a well-formed candidate record or an error. A failure here
// means the single resume is skipped, never the whole run.
func (e *Extractor) Extract(ctx context.Context, text string) (*candidate.Record, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("resume text is empty")
	}

	prompt := fmt.Sprintf(extractorPrompt, text)

	e.logger.Debug("gemini extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateJSON(ctx, prompt, recordSchema())
	if err != nil {
		return nil, fmt.Errorf("extracting candidate record: %w", err)
	}

	e.logger.Debug("gemini extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	record, err := decodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding candidate record: %w", err)
	}

	return record, nil
}

// decodeRecord parses the model output into a candidate record. The decode is
// weakly typed because the model sometimes returns numbers as strings.
func decodeRecord(raw string) (*candidate.Record, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var record candidate.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decode candidate record: %w", err)
	}

	return &record, nil
}

func recordSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Candidate's full name.",
			},
			"email":    {Type: genai.TypeString},
			"phone":    {Type: genai.TypeString},
			"location": {Type: genai.TypeString},
			"summary": {
				Type:        genai.TypeString,
				Description: "Professional summary or objective.",
			},
			"skills": {
				Type:        genai.TypeArray,
				Description: "Technical and soft skills as found on the resume. Use atomic keywords.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"job_title": {Type: genai.TypeString},
						"company":   {Type: genai.TypeString},
						"duration": {
							Type:        genai.TypeString,
							Description: "Duration as written, e.g. 'Jan 2020 - Dec 2022'.",
						},
						"years": {
							Type:        genai.TypeNumber,
							Description: "Approximate years spent in this role.",
						},
						"responsibilities": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
					Required: []string{"job_title", "years"},
				},
			},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"degree": {Type: genai.TypeString},
						"field": {
							Type:        genai.TypeString,
							Description: "Field of study, e.g. 'Computer Science'.",
						},
						"institution": {Type: genai.TypeString},
						"year":        {Type: genai.TypeString},
					},
					Required: []string{"degree"},
				},
			},
			"certifications": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"name", "skills", "experience", "education"},
	}
}
