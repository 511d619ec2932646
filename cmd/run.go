package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-ranker/internal/ai/gemini"
	"github.com/spigell/resume-ranker/internal/job"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/pipeline"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the resume-ranker main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("folder", "", "folder containing resume files (.pdf/.docx)")
	runCmd.Flags().StringSlice("files", nil, "explicit resume file paths")
	runCmd.Flags().StringP("report", "r", "", "path of the JSON report file. Default is "+defaultReportFile)
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before overwriting the report file")

	viper.BindPFlag("report", runCmd.Flags().Lookup("report"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Job == nil {
		logger.Fatal("a job requirement is required under the job section of the config")
	}

	config.Job.Normalize()
	if err := config.Job.Validate(); err != nil {
		logger.Fatal("validating the job requirement", zap.Error(err))
	}

	weights := job.DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}
	if err := weights.Validate(); err != nil {
		logger.Fatal("validating the scoring weights", zap.Error(err))
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY / GEMINI_API_KEY_FILE or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	folder, _ := cmd.Flags().GetString("folder")
	explicit, _ := cmd.Flags().GetStringSlice("files")

	files, err := resume.Collect(folder, explicit)
	if err != nil {
		logger.Fatal("collecting resume files", zap.Error(err))
	}

	logger.Info("collected resume files", zap.Int("count", len(files)))
	logger.Info("job requirement",
		zap.String("title", config.Job.Title),
		zap.Strings("required_skills", config.Job.RequiredSkills),
		zap.Float64("required_years", config.Job.RequiredYears),
	)

	p, err := buildPipeline(ctx, config, weights, apiKey, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	result := p.Run(ctx, files)

	if err := result.Render(os.Stdout); err != nil {
		logger.Fatal("rendering rankings", zap.Error(err))
	}

	reportFile := strings.TrimSpace(viper.GetString("report"))
	if reportFile == "" {
		reportFile = defaultReportFile
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if !autoApprove && !confirmOverwrite(reportFile) {
		logger.Info("skipping report file", zap.String("reason", "got no from prompt"))
		return
	}

	if err := result.WriteFile(reportFile); err != nil {
		logger.Fatal("writing the report file", zap.Error(err))
	}

	logger.Info("report saved", zap.String("filename", reportFile))
}

// confirmOverwrite asks before clobbering an existing report file.
func confirmOverwrite(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Report file %s exists. Overwrite?", path),
		Items: []string{PromptYes, PromptNo},
	}

	_, action, err := prompt.Run()
	if err != nil {
		return false
	}

	return action == PromptYes
}

func resolveAPIKey(config *Config) (string, error) {
	src := secrets.Source{
		Name: "gemini api key",
		Env:  "GEMINI_API_KEY",
	}

	if config.AI != nil && config.AI.Gemini != nil {
		src.Value = config.AI.Gemini.APIKey
		src.File = config.AI.Gemini.APIKeyFile
	}

	if src.File == "" {
		src.File = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	return secrets.Load(src)
}

func buildPipeline(ctx context.Context, config *Config, weights job.Weights, apiKey string, log *zap.Logger) (*pipeline.Pipeline, error) {
	model := ""
	maxRetries := 0
	maxLogLength := 0
	if config.AI != nil && config.AI.Gemini != nil {
		model = config.AI.Gemini.Model
		maxRetries = config.AI.Gemini.MaxRetries
		maxLogLength = config.AI.Gemini.MaxLogLength
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, model, maxRetries, log)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	aiLogger := logger.WithAIFields(log, "gemini", generator.Model())

	return pipeline.New(config.Job, weights, pipeline.Deps{
		Extractor: gemini.NewExtractor(generator, aiLogger, maxLogLength),
		Matcher:   gemini.NewMatcher(generator, aiLogger, maxLogLength),
		Logger:    log,
	})
}
