package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/o42sam/rapiddocs-sub000/internal/cache"
	"github.com/o42sam/rapiddocs-sub000/internal/chart"
	"github.com/o42sam/rapiddocs-sub000/internal/extract"
	"github.com/o42sam/rapiddocs-sub000/internal/image"
	"github.com/o42sam/rapiddocs-sub000/internal/importer"
	"github.com/o42sam/rapiddocs-sub000/internal/llm"
	"github.com/o42sam/rapiddocs-sub000/internal/model"
	"github.com/o42sam/rapiddocs-sub000/internal/pipeline"
	"github.com/o42sam/rapiddocs-sub000/internal/render"
)

var (
	outputDir     string
	importFile    string
	numImages     int
	wordCount     int
	sectionCount  int
	genTimeout    time.Duration
	noCache       bool
	includeCover  bool
	logoPath      string
	llmEnabled    bool
	llmProvider   string
	llmModel      string
	imageProvider string
	imageModel    string
)

var generateCmd = &cobra.Command{
	Use:   "generate <invoice|report> <prompt>",
	Short: "Generate a document from a free-text prompt",
	Long: `Generate analyzes the prompt, produces body text, renders charts for
any statistics it finds, creates illustrations, and writes the final
document plus its media files to the output directory.

Example:
  rapiddocs generate invoice "Invoice Widgets Inc for 10 hours of consulting at $150/hr, tax rate 8%"
  rapiddocs generate report "A formal report about renewable energy adoption, 5 sections, 2000 words"
  rapiddocs generate report "Q3 results" --llm --llm-provider openai --images 3`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputDir, "out", "o", "out", "output directory")
	generateCmd.Flags().StringVar(&importFile, "import", "", "CSV file with extra line items or statistics")
	generateCmd.Flags().IntVar(&numImages, "images", 0, "illustration count (overrides the prompt)")
	generateCmd.Flags().IntVar(&wordCount, "words", 0, "report word count (overrides the prompt)")
	generateCmd.Flags().IntVar(&sectionCount, "sections", 0, "report section count (overrides the prompt)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 5*time.Minute, "overall generation timeout")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
	generateCmd.Flags().BoolVar(&includeCover, "cover", false, "include a cover block in the artifact")
	generateCmd.Flags().StringVar(&logoPath, "logo", "", "logo image for the cover")

	generateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable AI extraction and text generation")
	generateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	generateCmd.Flags().StringVar(&imageProvider, "image-provider", "", "illustration backend (imagen; placeholder if empty)")
	generateCmd.Flags().StringVar(&imageModel, "image-model", "", "illustration model name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	docType := model.DocumentType(args[0])
	prompt := args[1]

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeCover = includeCover
	cfg.Output.LogoPath = logoPath

	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gen, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	imageGen, err := buildImageGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}

	var ai *extract.AIExtractor
	if gen != nil {
		var c cache.Cache
		if cfg.Cache.Enabled {
			c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
		ai = extract.NewAIExtractor(gen, c, cfg.Cache.TTL, log)
	}

	var dataImporter importer.DataImporter
	if importFile != "" {
		dataImporter = importer.NewCSVImporter()
	}

	orch := pipeline.NewOrchestrator(cfg, gen, imageGen,
		chart.NewSVGRenderer(cfg.Chart.Width, cfg.Chart.Height),
		render.NewMarkdownRenderer(), dataImporter, ai, log)

	result, err := orch.Execute(ctx, pipeline.Request{
		DocType:      docType,
		Prompt:       prompt,
		ImportFile:   importFile,
		NumImages:    numImages,
		WordCount:    wordCount,
		SectionCount: sectionCount,
		OutputDir:    outputDir,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(os.Stderr, "✓ %d charts, %d illustrations in %v\n",
		len(result.ChartPaths), len(result.ImagePaths), result.Duration.Round(time.Millisecond))
	fmt.Println(result.ArtifactPath)

	return nil
}

// buildGenerator creates the text generator from flags and environment.
// Returns nil when AI is not enabled.
func buildGenerator(cfg *model.Config) (llm.Generator, error) {
	if !llmEnabled {
		return nil, nil
	}

	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return llm.NewGenerator(llm.ConfigFromModel(cfg.LLM))
}

func buildImageGenerator(ctx context.Context, cfg *model.Config, log *zap.Logger) (image.Generator, error) {
	if imageProvider == "" {
		return nil, nil
	}
	if imageProvider != "imagen" {
		return nil, fmt.Errorf("unknown image provider: %s", imageProvider)
	}

	cfg.Image.Provider = imageProvider
	if imageModel != "" {
		cfg.Image.Model = imageModel
	}
	cfg.Image.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.Image.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	gen, err := image.NewImagenGenerator(ctx, cfg.Image.APIKey, cfg.Image.Model)
	if err != nil {
		log.Warn("image backend unavailable, using placeholders", zap.Error(err))
		return nil, nil
	}
	return gen, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
