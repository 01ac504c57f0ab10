package image

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/o42sam/rapiddocs-sub000/internal/worker"
)

const defaultBatchSize = 3

// Batcher renders a list of illustration prompts through a Generator in
// paced batches. Every prompt yields a file: when the backend fails or
// is inactive the slot is filled with a placeholder, so the caller can
// rely on len(result) == len(prompts).
type Batcher struct {
	gen         Generator
	fallback    *PlaceholderGenerator
	limiter     *worker.Limiter
	log         *zap.Logger
	batchSize   int
	batchDelay  time.Duration
	width       int
	height      int
}

// NewBatcher creates a batcher. gen may be nil, in which case every
// illustration is a placeholder.
func NewBatcher(gen Generator, batchSize int, batchDelay time.Duration, width, height int, log *zap.Logger) *Batcher {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Batcher{
		gen:        gen,
		fallback:   NewPlaceholderGenerator(),
		limiter:    worker.NewLimiter(1, 1),
		log:        log,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		width:      width,
		height:     height,
	}
}

type illustrationJob struct {
	batcher *Batcher
	index   int
	prompt  string
	path    string
}

type illustrationResult struct {
	index int
	path  string
	err   error
}

func (r illustrationResult) GetError() error { return r.err }

func (j illustrationJob) Execute(ctx context.Context) worker.Result {
	path, err := j.batcher.renderOne(ctx, j.prompt, j.path)
	return illustrationResult{index: j.index, path: path, err: err}
}

// renderOne tries the configured backend, then falls back to a
// placeholder. The error is the backend's, kept for logging; the path
// is always usable unless the placeholder itself failed.
func (b *Batcher) renderOne(ctx context.Context, prompt, path string) (string, error) {
	if b.gen != nil && b.gen.IsActive(ctx) {
		out, err := b.gen.GenerateToFile(ctx, prompt, path, b.width, b.height)
		if err == nil {
			return out, nil
		}
		b.log.Warn("illustration backend failed, using placeholder",
			zap.String("provider", b.gen.Name()),
			zap.Error(err))
	}

	return b.fallback.GenerateToFile(ctx, prompt, path, b.width, b.height)
}

// GenerateAll renders every prompt into outDir, pacing batches so the
// provider's quota holds. Output order matches prompt order.
func (b *Batcher) GenerateAll(ctx context.Context, prompts []string, outDir, jobID string) ([]string, error) {
	if len(prompts) == 0 {
		return nil, nil
	}

	provider := "placeholder"
	if b.gen != nil {
		provider = b.gen.Name()
	}

	paths := make([]string, len(prompts))

	for start := 0; start < len(prompts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(prompts) {
			end = len(prompts)
		}

		if start > 0 {
			if err := b.limiter.WaitWithDelay(ctx, provider, b.batchDelay); err != nil {
				return nil, fmt.Errorf("illustrations: pacing batch: %w", err)
			}
		}

		pool := worker.NewPool(end - start)
		pool.Start()
		for i := start; i < end; i++ {
			pool.Submit(illustrationJob{
				batcher: b,
				index:   i,
				prompt:  prompts[i],
				path:    filepath.Join(outDir, fmt.Sprintf("%s-illustration-%d.png", jobID, i+1)),
			})
		}

		for _, res := range pool.Wait() {
			r := res.(illustrationResult)
			if r.err != nil {
				return nil, fmt.Errorf("illustrations: rendering image %d: %w", r.index+1, r.err)
			}
			paths[r.index] = r.path
		}
	}

	return paths, nil
}
