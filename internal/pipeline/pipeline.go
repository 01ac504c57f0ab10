// Package pipeline orchestrates the staged generation flow: analyze the
// prompt, generate text, produce charts and illustrations, and render
// the final artifact.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/o42sam/rapiddocs-sub000/internal/chart"
	"github.com/o42sam/rapiddocs-sub000/internal/extract"
	"github.com/o42sam/rapiddocs-sub000/internal/image"
	"github.com/o42sam/rapiddocs-sub000/internal/importer"
	"github.com/o42sam/rapiddocs-sub000/internal/llm"
	"github.com/o42sam/rapiddocs-sub000/internal/model"
	"github.com/o42sam/rapiddocs-sub000/internal/render"
	"github.com/o42sam/rapiddocs-sub000/internal/segment"
)

// Request describes one document generation job.
type Request struct {
	DocType      model.DocumentType
	Prompt       string
	ImportFile   string
	NumImages    int
	WordCount    int
	SectionCount int
	OutputDir    string
}

// Validate checks the request before any stage runs.
func (r Request) Validate() error {
	if !r.DocType.Valid() {
		return &ValidationError{Field: "doc_type", Reason: fmt.Sprintf("unknown document type %q", r.DocType)}
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	return nil
}

// Result is the outcome of a completed job. ChartPaths and ImagePaths
// may be shorter than requested when best-effort stages degrade.
type Result struct {
	JobID        string
	DocType      model.DocumentType
	Extraction   model.ExtractionResult
	ArtifactPath string
	ChartPaths   []string
	ImagePaths   []string
	Warnings     []string
	Duration     time.Duration
}

// Orchestrator wires the collaborators for Execute. All dependencies
// are injected; optional ones may be nil and degrade gracefully.
type Orchestrator struct {
	gen       llm.Generator
	regex     *extract.RegexExtractor
	ai        *extract.AIExtractor
	merger    *extract.Merger
	segmenter *segment.Segmenter
	charts    *chart.Dispatcher
	images    *image.Batcher
	renderer  render.Renderer
	importer  importer.DataImporter
	log       *zap.Logger
	cfg       *model.Config
}

// NewOrchestrator builds an orchestrator from explicit collaborators.
// gen, imageGen and dataImporter may be nil.
func NewOrchestrator(
	cfg *model.Config,
	gen llm.Generator,
	imageGen image.Generator,
	chartRenderer chart.ChartRenderer,
	docRenderer render.Renderer,
	dataImporter importer.DataImporter,
	ai *extract.AIExtractor,
	log *zap.Logger,
) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	return &Orchestrator{
		gen:       gen,
		regex:     extract.NewRegexExtractor(),
		ai:        ai,
		merger:    extract.NewMerger(),
		segmenter: segment.NewSegmenter(),
		charts:    chart.NewDispatcher(chartRenderer, log),
		images: image.NewBatcher(imageGen, cfg.Image.BatchSize, cfg.Image.BatchDelay,
			cfg.Image.Width, cfg.Image.Height, log),
		renderer: docRenderer,
		importer: dataImporter,
		log:      log,
		cfg:      cfg,
	}
}

// Execute runs the full pipeline for one request. Analyze, text
// generation and rendering are critical; charts and illustrations are
// best-effort and only add warnings on failure.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	jobID := uuid.NewString()[:8]
	log := o.log.With(zap.String("job_id", jobID), zap.String("doc_type", string(req.DocType)))
	log.Info("starting generation")

	result := &Result{JobID: jobID, DocType: req.DocType}

	extraction, err := o.analyze(ctx, req, log)
	if err != nil {
		return nil, &StageError{Stage: StageAnalyze, Err: err}
	}
	result.Extraction = extraction

	outDir := req.OutputDir
	if outDir == "" {
		outDir = o.cfg.Output.Dir
	}

	sections, err := o.generateText(ctx, req.DocType, extraction, log)
	if err != nil {
		return nil, &StageError{Stage: StageText, Err: err}
	}

	// Charts and illustrations are independent of each other; run them
	// concurrently. Neither may fail the job. Each goroutine writes only
	// its own result fields.
	var chartWarning, imageWarning string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.ChartPaths = o.charts.RenderAll(gctx, extraction.Statistics, o.cfg.Chart.Colors, outDir, jobID)
		if len(result.ChartPaths) < len(extraction.Statistics) {
			chartWarning = fmt.Sprintf("%s: rendered %d of %d charts", StageCharts, len(result.ChartPaths), len(extraction.Statistics))
		}
		return nil
	})
	g.Go(func() error {
		paths, err := o.images.GenerateAll(gctx, extraction.ImagePrompts, outDir, jobID)
		if err != nil {
			log.Warn("illustration stage degraded", zap.Error(err))
			imageWarning = fmt.Sprintf("%s: %v", StageIllustrations, err)
			return nil
		}
		result.ImagePaths = paths
		return nil
	})
	_ = g.Wait()

	for _, w := range []string{chartWarning, imageWarning} {
		if w != "" {
			result.Warnings = append(result.Warnings, w)
		}
	}

	artifact, err := o.renderArtifact(ctx, req.DocType, extraction, sections, result, outDir)
	if err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}
	result.ArtifactPath = artifact

	result.Duration = time.Since(start)
	log.Info("generation complete",
		zap.String("artifact", artifact),
		zap.Int("charts", len(result.ChartPaths)),
		zap.Int("illustrations", len(result.ImagePaths)),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// analyze extracts parameters from the prompt, layers in imported data
// and request overrides, then fills defaults.
func (o *Orchestrator) analyze(ctx context.Context, req Request, log *zap.Logger) (model.ExtractionResult, error) {
	regexResult := o.regex.Extract(req.DocType, req.Prompt)

	var aiResult model.ExtractionResult
	if o.ai != nil {
		aiResult = o.ai.Extract(ctx, req.DocType, req.Prompt)
	} else {
		aiResult = model.ExtractionResult{DocType: req.DocType}
	}

	merged := o.merger.Merge(aiResult, regexResult)

	if req.ImportFile != "" {
		if o.importer == nil {
			return model.ExtractionResult{}, fmt.Errorf("import file given but no importer configured")
		}
		records, err := o.importer.ImportFile(req.ImportFile)
		if err != nil {
			return model.ExtractionResult{}, err
		}
		importer.Apply(&merged, records)
		log.Info("imported records", zap.Int("count", len(records)))
	}

	// Explicit request flags beat anything extracted from the prompt.
	if req.NumImages > 0 {
		merged.ImageCount = req.NumImages
	}
	if req.WordCount > 0 {
		merged.WordCount = req.WordCount
	}
	if req.SectionCount > 0 {
		merged.SectionCount = req.SectionCount
	}

	return o.merger.FillDefaults(merged), nil
}

func (o *Orchestrator) generateText(ctx context.Context, docType model.DocumentType, extraction model.ExtractionResult, log *zap.Logger) ([]model.Section, error) {
	if docType == model.DocumentInvoice {
		return invoiceSections(extraction), nil
	}
	return o.reportSections(ctx, extraction, log)
}

// reportSections produces the report body. An active generator writes
// it; otherwise a deterministic outline-driven body stands in so the
// pipeline works offline.
func (o *Orchestrator) reportSections(ctx context.Context, extraction model.ExtractionResult, log *zap.Logger) ([]model.Section, error) {
	if o.gen != nil && o.gen.IsActive(ctx) {
		body, err := o.gen.Generate(ctx, llm.GenerateRequest{
			System: reportSystemPrompt,
			Prompt: reportPrompt(extraction),
		})
		if err != nil {
			return nil, fmt.Errorf("generating report body: %w", err)
		}
		return o.segmenter.Segment(body, extraction.SectionOutline, extraction.SectionCount), nil
	}

	log.Info("no text generator active, using outline body")
	return o.segmenter.Segment(outlineBody(extraction), extraction.SectionOutline, extraction.SectionCount), nil
}

func (o *Orchestrator) renderArtifact(ctx context.Context, docType model.DocumentType, extraction model.ExtractionResult, sections []model.Section, result *Result, outDir string) (string, error) {
	if o.renderer == nil {
		return "", fmt.Errorf("no renderer configured")
	}

	doc := render.Document{
		Title:        documentTitle(docType, extraction),
		ChartPaths:   result.ChartPaths,
		ImagePaths:   result.ImagePaths,
		OutPath:      filepath.Join(outDir, fmt.Sprintf("%s-%s.md", result.JobID, docType)),
		LogoPath:     o.cfg.Output.LogoPath,
		IncludeCover: o.cfg.Output.IncludeCover,
		Metadata:     documentMetadata(docType, extraction),
	}
	for _, s := range sections {
		doc.Sections = append(doc.Sections, render.RenderedSection{Heading: s.Heading, Body: s.Body})
	}

	return o.renderer.Render(ctx, doc)
}

func documentTitle(docType model.DocumentType, extraction model.ExtractionResult) string {
	if docType == model.DocumentInvoice {
		return "Invoice " + extraction.InvoiceNumber
	}
	return extraction.Title
}

func documentMetadata(docType model.DocumentType, extraction model.ExtractionResult) map[string]string {
	if docType == model.DocumentInvoice {
		return map[string]string{
			"Invoice Number": extraction.InvoiceNumber,
			"Currency":       extraction.Currency,
			"Payment Terms":  extraction.PaymentTerms,
		}
	}
	return map[string]string{
		"Topic": extraction.Topic,
		"Tone":  extraction.Tone,
	}
}

const reportSystemPrompt = "You are a professional report writer. Write clear, well-structured prose. " +
	"Number each section heading (1., 2., ...) and keep the requested tone throughout."

func reportPrompt(e model.ExtractionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s report titled %q about %s, around %d words, in %d sections.\n",
		e.Tone, e.Title, e.Topic, e.WordCount, e.SectionCount)
	b.WriteString("Section outline:\n")
	for i, h := range e.SectionOutline {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
	}
	if len(e.Statistics) > 0 {
		b.WriteString("Weave in these figures where relevant:\n")
		for _, s := range e.Statistics {
			fmt.Fprintf(&b, "- %s: %g%s\n", s.Name, s.Value, s.Unit)
		}
	}
	return b.String()
}

// outlineBody is the offline fallback body: one short paragraph per
// outline heading, numbered so the segmenter splits on headings.
func outlineBody(e model.ExtractionResult) string {
	var b strings.Builder
	for i, h := range e.SectionOutline {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		fmt.Fprintf(&b, "This section of %q addresses %s in the context of %s.", e.Title, strings.ToLower(h), e.Topic)
		for _, s := range e.Statistics {
			fmt.Fprintf(&b, " %s stands at %g%s.", s.Name, s.Value, s.Unit)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
