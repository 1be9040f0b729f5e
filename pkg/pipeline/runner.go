package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/supernova/pkg/buildinfo"
	"github.com/matzehuels/supernova/pkg/cache"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/observability"
	"github.com/matzehuels/supernova/pkg/plot"
	"github.com/matzehuels/supernova/pkg/sink"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

const artifactKeyType = "artifact"

// Runner executes renders with caching.
//
// The Runner keeps no per-render state; every call builds its own plot
// from the request, so one Runner may serve several goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, keys are scoped by the build version.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(nil, buildinfo.Version+":")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate renders req and writes the artifact to req.Output.
// On failure the returned error carries a code; errors.UserMessage turns
// it into the diagnostic shown to users.
func (r *Runner) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Output == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "output path is required")
	}
	res, err := r.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := sink.Save(res.Artifact, req.Output); err != nil {
		return nil, err
	}
	res.Path = req.Output

	r.Logger.Debug("wrote output",
		"path", res.Path,
		"format", res.Format,
		"bytes", res.Stats.Bytes,
		"cached", res.CacheHit)
	return res, nil
}

// Render computes and encodes req without writing anything.
func (r *Runner) Render(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	format, err := req.ResolveFormat()
	if err != nil {
		return nil, err
	}
	id := req.label()
	r.logRequest(req, format.Name)

	// Stage 1: geometry
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, id)
	buildStart := time.Now()
	p, err := plot.NewBuilder(req.Config, req.style(), plot.WithLogger(r.Logger)).Build(req.Measurements)
	buildTime := time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, id, 0, buildTime, err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, id, len(p.Instructions), buildTime, nil)

	res := &Result{
		Plot:   p,
		Format: format.Name,
		Stats: Stats{
			BuildTime: buildTime,
			Triangles: len(p.Instructions),
		},
	}
	r.Logger.Debug("built plot",
		"id", id,
		"triangles", res.Stats.Triangles,
		"per_trait", p.CountByTrait(),
		"duration", buildTime)

	// Stage 2: encode, unless an identical render is cached
	key := r.Keyer.ArtifactKey(req.keyOpts(format.Name))
	if a, ok := r.cached(ctx, key, format.Name); ok {
		res.Artifact = a
		res.CacheHit = true
		res.Stats.Bytes = len(a.Bytes())
		return res, nil
	}

	hooks.OnEncodeStart(ctx, id, format.Name)
	encodeStart := time.Now()
	a, err := sink.Render(p, format.Name)
	res.Stats.EncodeTime = time.Since(encodeStart)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to encode %s", format.Name)
		}
		hooks.OnEncodeComplete(ctx, id, format.Name, 0, res.Stats.EncodeTime, err)
		return nil, err
	}
	data := a.Bytes()
	hooks.OnEncodeComplete(ctx, id, format.Name, len(data), res.Stats.EncodeTime, nil)

	if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
		observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
	}

	res.Artifact = a
	res.Stats.Bytes = len(data)
	return res, nil
}

// cached returns the artifact stored under key. Read failures count as
// misses.
func (r *Runner) cached(ctx context.Context, key, format string) (sink.Artifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return nil, false
	}
	a, err := sink.FromBytes(format, data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, artifactKeyType)
	r.Logger.Debug("artifact cache hit", "key", key)
	return a, true
}

// logRequest reports the effective inputs at debug level.
func (r *Runner) logRequest(req Request, format string) {
	if r.Logger.GetLevel() > log.DebugLevel {
		return
	}
	s := req.style()
	colors := make([]any, 0, 2*len(trait.All))
	for _, t := range trait.All {
		colors = append(colors, string(t), style.Hex(s.Color(t)))
	}
	r.Logger.Debug("colors", colors...)
	r.Logger.Debug("config",
		"background", style.Hex(req.Config.Background),
		"opacity", req.Config.Opacity,
		"margin", req.Config.Margin,
		"width", req.Config.Width,
		"height", req.Config.Height,
		"center", req.Config.Center,
		"first_only", req.Config.OnlyFirstIteration,
		"format", format)
	for _, t := range trait.All {
		if m, ok := req.Measurements[t]; ok {
			r.Logger.Debug("measurement", "trait", t, "score", m.Score, "percentile", m.Percentile)
		}
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
