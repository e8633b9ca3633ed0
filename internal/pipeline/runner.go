package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/billycemerson/Spotify-Collab/internal/analyze"
	"github.com/billycemerson/Spotify-Collab/internal/collab"
	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/fetch"
	"github.com/billycemerson/Spotify-Collab/internal/http"
	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/progress"
	"github.com/billycemerson/Spotify-Collab/internal/spotify"
	"github.com/billycemerson/Spotify-Collab/internal/transform"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageTransform Stage = "transform"
	StageCollab    Stage = "collab"
	StageAnalyze   Stage = "analyze"
)

// Stages returns every stage in execution order.
func Stages() []Stage {
	return []Stage{StageFetch, StageTransform, StageCollab, StageAnalyze}
}

// Runner executes pipeline stages. Stages only communicate through the
// files they write, so each one can run on its own as long as its input
// files exist.
//
// Example usage:
//
//	settings, _ := config.Load("config.json")
//	_ = settings.LoadEnv()
//
//	runner := pipeline.NewRunner(settings, func(e progress.Event) {
//	    fmt.Println(e.Message)
//	})
//	if err := runner.All(ctx); err != nil {
//	    log.Fatal(err)
//	}
type Runner struct {
	settings   *config.Settings
	paths      *model.PathConfig
	onProgress progress.Func

	// catalog overrides the Spotify catalog built from settings.
	catalog fetch.Catalog

	mu      sync.Mutex
	fetcher *fetch.Manager
}

// NewRunner creates a Runner for the given settings.
func NewRunner(settings *config.Settings, onProgress progress.Func) *Runner {
	return &Runner{
		settings:   settings,
		paths:      settings.ToPaths(),
		onProgress: onProgress,
	}
}

// Paths returns the file layout the runner reads and writes.
func (r *Runner) Paths() *model.PathConfig {
	return r.paths
}

// Run executes a single stage.
func (r *Runner) Run(ctx context.Context, stage Stage) error {
	switch stage {
	case StageFetch:
		return r.Fetch(ctx)
	case StageTransform:
		return r.Transform(ctx)
	case StageCollab:
		return r.Collab(ctx)
	case StageAnalyze:
		return r.Analyze(ctx)
	}
	return errors.Newf("unknown stage %q", stage)
}

// All executes every stage in order and stops at the first failure.
func (r *Runner) All(ctx context.Context) error {
	for _, stage := range Stages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Run(ctx, stage); err != nil {
			return errors.Wrapf(err, "%s stage", stage)
		}
	}
	return nil
}

// FetchProgress reports how many playlist items the running fetch stage
// has processed.
func (r *Runner) FetchProgress() (processed, total int32) {
	r.mu.Lock()
	m := r.fetcher
	r.mu.Unlock()
	if m == nil {
		return 0, 0
	}
	return m.Progress()
}

// Fetch reads the configured playlist from Spotify and writes the raw
// bundle document.
func (r *Runner) Fetch(ctx context.Context) error {
	if err := r.settings.Validate(); err != nil {
		return err
	}

	catalog := r.catalog
	if catalog == nil {
		if err := r.settings.RequireCredentials(); err != nil {
			return err
		}
		cfg := r.settings.ToFetchConfig()
		cfg.OnRateLimit = func(path string, wait time.Duration) {
			r.onProgress.Emit(progress.LevelWarning, "Rate limited on %s, retrying in %s", path, wait)
		}
		catalog = spotify.NewCatalog(http.NewClient(ctx, cfg), r.settings.PageSize)
	}

	manager := fetch.NewManager(catalog, r.onProgress)
	r.mu.Lock()
	r.fetcher = manager
	r.mu.Unlock()

	r.onProgress.Emit(progress.LevelInfo, "Fetching playlist %s", r.settings.PlaylistID)
	bundles, err := manager.Run(ctx, r.settings.PlaylistID)
	if err != nil {
		return err
	}

	path := r.paths.RawFile(r.settings.PlaylistID)
	if err := ioutils.WriteJSON(path, bundles); err != nil {
		return err
	}
	r.onProgress.Emit(progress.LevelSuccess, "Saved %d tracks to %s", len(bundles), path)
	return nil
}

// Transform normalizes the raw bundles into the relational tables and the
// wide table.
func (r *Runner) Transform(ctx context.Context) error {
	bundles, err := transform.LoadBundles(r.paths.RawFile(r.settings.PlaylistID))
	if err != nil {
		return err
	}

	tables := transform.Normalize(bundles)
	if err := tables.Save(r.paths); err != nil {
		return err
	}
	r.onProgress.Emit(progress.LevelSuccess, "Saved %d tracks, %d albums, %d artists, %d links to %s",
		len(tables.Tracks), len(tables.Albums), len(tables.Artists), len(tables.Links), r.paths.DataPath)
	return ctx.Err()
}

// Collab builds the collaboration graph, writes its metrics and export and
// renders the network and every community.
func (r *Runner) Collab(ctx context.Context) error {
	if err := r.settings.Validate(); err != nil {
		return err
	}
	cfg := r.settings.ToGraphConfig()
	render := r.settings.ToRenderConfig()

	apps, err := r.appearances(cfg.NodeKey)
	if err != nil {
		return err
	}

	g := collab.Build(apps, cfg.IncludeSolo)
	r.onProgress.Emit(progress.LevelInfo, "Collaboration graph: %d artists, %d edges", g.NodeCount(), g.EdgeCount())

	table, eigen := collab.Analyze(g, apps, cfg)
	switch eigen.Method {
	case collab.EigenDirect:
		r.onProgress.Emit(progress.LevelWarning, "Eigenvector centrality did not converge, used direct method: %v", eigen.PowerErr)
	case collab.EigenUnavailable:
		r.onProgress.Emit(progress.LevelWarning, "Eigenvector centrality unavailable: %v", eigen.DirectErr)
	}
	if err := table.WriteCSV(r.paths.ResultFile(model.MetricsFile)); err != nil {
		return err
	}

	comms := collab.Communities(g)
	r.onProgress.Emit(progress.LevelInfo, "Detected %d communities", len(comms))

	doc := collab.Export(g, comms, eigen.Method, cfg, time.Now())
	if err := doc.WriteJSON(r.paths.ResultFile(model.GraphExportFile)); err != nil {
		return err
	}

	if err := collab.RenderNetwork(g, table, render, r.paths.ResultFile(model.NetworkImageFile)); err != nil {
		return err
	}
	rendered, err := collab.RenderCommunities(ctx, g, table, comms, render, r.paths)
	if err != nil {
		return err
	}

	big := 0
	for _, rc := range rendered {
		if rc.Big {
			big++
		}
		r.onProgress.Emit(progress.LevelVerbose, "Saved %s", rc.Path)
	}
	r.onProgress.Emit(progress.LevelSuccess, "Rendered %d big and %d small communities to %s",
		big, len(rendered)-big, r.paths.ResultsPath)
	return nil
}

func (r *Runner) appearances(key collab.NodeKey) ([]collab.Appearance, error) {
	if key == collab.NodeKeyName {
		rows, err := transform.ReadWide(r.paths)
		if err != nil {
			return nil, err
		}
		return collab.FromWide(rows), nil
	}

	tables, err := transform.ReadTables(r.paths)
	if err != nil {
		return nil, err
	}
	return collab.FromTables(tables), nil
}

// Analyze writes the descriptive charts and summary of the wide table.
func (r *Runner) Analyze(ctx context.Context) error {
	rows, err := transform.ReadWide(r.paths)
	if err != nil {
		return err
	}
	if _, err := analyze.Report(rows, r.paths, r.onProgress); err != nil {
		return err
	}
	r.onProgress.Emit(progress.LevelSuccess, "Analysis saved to %s", r.paths.ResultsPath)
	return ctx.Err()
}
