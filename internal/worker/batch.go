package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nmishin/deckforge/internal/model"
)

// Runner processes one dossier through the full pipeline. Declared here
// rather than importing the pipeline package to keep the dependency
// direction one-way.
type Runner interface {
	Run(ctx context.Context, dossierMD, outDir string) (*model.RunResult, error)
}

// DossierJob runs one dossier file.
type DossierJob struct {
	Path   string
	OutDir string
	Runner Runner
}

// Execute reads the dossier and runs the pipeline on it.
func (j *DossierJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &DossierResult{Path: j.Path, Error: fmt.Errorf("read dossier: %w", err)}
	}
	result, err := j.Runner.Run(ctx, string(data), j.OutDir)
	return &DossierResult{Path: j.Path, Result: result, Error: err}
}

// DossierResult is the outcome of one batch entry.
type DossierResult struct {
	Path   string
	Result *model.RunResult
	Error  error
}

// GetError returns the error from the dossier result
func (r *DossierResult) GetError() error {
	return r.Error
}

// BatchProcessor runs multiple dossiers concurrently.
type BatchProcessor struct {
	runner      Runner
	outDir      string
	concurrency int
}

func NewBatchProcessor(runner Runner, outDir string, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		outDir:      outDir,
		concurrency: concurrency,
	}
}

// ProcessPaths runs the given dossier files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DossierResult {
	if len(paths) == 0 {
		return []*DossierResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for _, path := range paths {
		pool.Submit(&DossierJob{
			Path:   path,
			OutDir: b.outDir,
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	dossierResults := make([]*DossierResult, len(results))
	for i, result := range results {
		dossierResults[i] = result.(*DossierResult)
	}
	return dossierResults
}

// ProcessDir runs every markdown dossier found in dir.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*DossierResult, error) {
	paths, err := ReadDossierPaths(dir)
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no markdown dossiers in %s", dir)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadDossierPaths lists the .md files of a directory in name order.
func ReadDossierPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
