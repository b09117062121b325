package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/fileutil"
	"github.com/alnah/go-specsheet/internal/hints"
	"github.com/alnah/go-specsheet/internal/server"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxProductFileSize bounds --from-file input.
const maxProductFileSize = 10 << 20

// productJob is one spec sheet to produce: an API product id, or a product
// already read from a file.
type productJob struct {
	ID  string
	DTO *catalog.ProductDTO
}

// label names the job in output lines.
func (j productJob) label() string {
	if j.ID != "" {
		return j.ID
	}
	if j.DTO != nil && j.DTO.Code != "" {
		return j.DTO.Code
	}
	return "product"
}

// GenerateResult holds the outcome of a single product.
type GenerateResult struct {
	Label      string
	OutputPath string
	PageCount  int
	Err        error
	Duration   time.Duration
}

// generateParams groups parameters shared across the batch.
type generateParams struct {
	catalog   server.Catalog
	choices   []catalog.Choice
	outDir    string
	assetBase string
	page      *specsheet.PageSettings
	footer    *specsheet.Footer
	logger    *zap.Logger
}

// runGenerate resolves settings, then fetches, generates and writes one
// spec sheet per product.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, ids, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		return err
	}
	applyAPIFlags(&f.common, &f.api, cfg)
	applyPageFlags(&f.common, &f.page, cfg)
	applyFooterFlags(&f.common, &f.footer, cfg)
	applyRenderFlags(&f.common, &f.render, cfg)
	if f.common.set["output"] {
		cfg.Output.Dir = f.output
	}
	if f.common.set["workers"] {
		cfg.Output.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	choices, err := catalog.ParseChoices(f.specs)
	if err != nil {
		return err
	}

	jobs, err := collectJobs(ids, f.fromFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	params := &generateParams{
		choices:   choices,
		outDir:    cfg.Output.Dir,
		assetBase: cfg.AssetBase(),
		page:      pageSettings(cfg),
		footer:    footerSettings(cfg),
		logger:    logger,
	}
	if len(ids) > 0 {
		params.catalog, err = env.NewCatalog(cfg, logger)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(params.outDir, dirPermissions); err != nil {
		return withHint(fmt.Errorf("%w: %v", ErrOutputDir, err), hints.ForOutputDirectory())
	}

	size := specsheet.ResolvePoolSize(cfg.Output.Workers)
	if size > len(jobs) {
		size = len(jobs)
	}
	pool := env.NewPool(size, generatorOptions(cfg, logger, nil)...)
	defer func() { _ = pool.Close() }()

	logger.Debug("generating",
		zap.Int("products", len(jobs)),
		zap.Int("workers", pool.Size()),
		zap.String("output", params.outDir),
	)

	results := generateBatch(ctx, pool, jobs, params)
	return reportResults(results, f.common.quiet, f.common.verbose, cfg, env)
}

// collectJobs builds the job list from positional ids and --from-file.
func collectJobs(ids []string, fromFile string) ([]productJob, error) {
	var jobs []productJob
	if fromFile != "" {
		dto, err := readProductFile(fromFile)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, productJob{DTO: dto})
	}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, catalog.ErrEmptyID
		}
		jobs = append(jobs, productJob{ID: id})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: pass product ids or --from-file", ErrNoInput)
	}
	return jobs, nil
}

// readProductFile reads a product as returned by the API, either bare or
// wrapped in {"data": ...}.
func readProductFile(path string) (*catalog.ProductDTO, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadProduct, err)
	}
	if info.Size() > maxProductFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrReadProduct, path, maxProductFileSize)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadProduct, err)
	}

	var wrapped struct {
		Data *catalog.ProductDTO `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadProduct, path, err)
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var dto catalog.ProductDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadProduct, path, err)
	}
	if dto.ID == "" && dto.Name == "" && dto.Code == "" {
		return nil, fmt.Errorf("%w: %s: no product found", ErrReadProduct, path)
	}
	return &dto, nil
}

// generateBatch processes jobs concurrently using the generator pool.
func generateBatch(ctx context.Context, pool Pool, jobs []productJob, params *generateParams) []GenerateResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]GenerateResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			gen, err := pool.Acquire(ctx)
			if err != nil {
				// Generator creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = GenerateResult{
						Label: jobs[idx].label(),
						Err:   fmt.Errorf("%w: %w", ErrGeneratorInit, err),
					}
				}
				return
			}
			defer pool.Release(gen)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = GenerateResult{Label: jobs[idx].label(), Err: ctx.Err()}
					continue
				}
				results[idx] = generateOne(ctx, gen, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// generateOne fetches, selects, generates and writes one product.
func generateOne(ctx context.Context, gen server.Generator, job productJob, params *generateParams) GenerateResult {
	start := time.Now()
	result := GenerateResult{Label: job.label()}
	done := func(err error) GenerateResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	dto := job.DTO
	if dto == nil {
		var err error
		dto, err = params.catalog.Product(ctx, job.ID)
		if err != nil {
			return done(err)
		}
	}

	sel, err := catalog.Select(dto, params.choices)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailableSpec) {
			err = withHint(err, hints.ForUnavailableSpec(catalog.Options(dto)))
		}
		return done(err)
	}

	res, err := gen.Generate(ctx, specsheet.Input{
		Product:     catalog.ToProduct(dto, params.assetBase),
		Selected:    sel.Specifications,
		ProductCode: sel.FullCode,
		Page:        params.page,
		Footer:      params.footer,
	})
	if err != nil {
		return done(err)
	}

	out := filepath.Join(params.outDir, res.FileName)
	if err := fileutil.WriteFileAtomic(out, res.PDF, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}
	result.OutputPath = out
	result.PageCount = res.PageCount

	params.logger.Debug("spec sheet written",
		zap.String("product", result.Label),
		zap.String("path", out),
		zap.Int("pages", res.PageCount),
		zap.Duration("took", time.Since(start)),
	)
	return done(nil)
}

// ResultSummary holds the count of succeeded and failed products.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed products.
func countResults(results []GenerateResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults prints one line per product and returns an error wrapping
// the first failure, if any.
func reportResults(results []GenerateResult, quiet, verbose bool, cfg *config.Config, env *Environment) error {
	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			err := withHint(r.Err, hintFor(r.Err, cfg.API.BaseURL))
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Label, err)
			if first == nil {
				first = r.Err
			}
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.Label, r.OutputPath, r.PageCount, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if first != nil {
		return fmt.Errorf("%w: %d of %d: %w", ErrBatchFailed, summary.Failed, len(results), first)
	}
	return nil
}
