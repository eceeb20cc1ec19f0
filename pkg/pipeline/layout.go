package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/force"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// trial is the outcome of one seeded engine run.
type trial struct {
	seed    uint64
	pos     map[string]force.Position
	quality force.Quality
}

// GenerateLayout filters g to opts.Year, runs opts.Trials engine runs
// concurrently and returns the layout with the lowest energy.
//
// Trial 0 uses opts.Seed itself, so a single-trial layout is exactly what
// [force.Compute] returns for that seed. Further trials use seeds derived
// from it. Ties keep the lower trial index, which makes the winner
// independent of scheduling.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	work := g
	if opts.Year > 0 {
		work = g.AsOf(opts.Year)
	}
	fg := work.ToForce(opts.GroupBy)
	region := opts.Region()
	seeds := TrialSeeds(opts.Seed, opts.Trials)

	hooks := observability.Layout()
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.Dims, len(fg.Nodes))

	results := make([]trial, len(seeds))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(MaxTrials)
	for i, seed := range seeds {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			trialStart := time.Now()
			engineOpts := opts.engineOptions(seed)
			pos, err := force.Compute(fg, region, engineOpts...)
			if err != nil {
				return err
			}
			q := force.Measure(fg, region, pos, engineOpts...)
			results[i] = trial{seed: seed, pos: pos, quality: q}

			hooks.OnTrialComplete(ctx, i, seed, q.Energy, time.Since(trialStart))
			opts.Logger.Debug("trial complete", "trial", i, "seed", seed, "energy", q.Energy, "duration", time.Since(trialStart))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		hooks.OnLayoutComplete(ctx, opts.Dims, time.Since(start), err)
		return graph.Layout{}, err
	}

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].quality.Energy < results[best].quality.Energy {
			best = i
		}
	}
	win := results[best]

	l := graph.NewLayout(work, region, win.pos)
	l.Seed = win.seed
	l.Iterations = opts.iterations()
	l.Year = opts.Year
	l.GroupBy = opts.GroupBy
	l.Quality = win.quality

	hooks.OnLayoutComplete(ctx, opts.Dims, time.Since(start), nil)
	return l, nil
}

// TrialSeeds returns the seeds used for n trials starting at base.
// The first seed is base; the rest are drawn from a PCG stream keyed by it.
func TrialSeeds(base uint64, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	seeds := make([]uint64, n)
	seeds[0] = base
	rng := rand.New(rand.NewPCG(base, base^0xdeadbeef))
	for i := 1; i < n; i++ {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// iterations returns the iteration count the engine will run.
func (o *Options) iterations() int {
	switch {
	case o.Static:
		return 0
	case o.Iterations > 0:
		return o.Iterations
	case o.Dims == 3:
		return force.DefaultIterations3D
	default:
		return force.DefaultIterations2D
	}
}

// engineOptions translates pipeline options into engine options for one trial.
// Zero-valued constants keep the engine defaults.
func (o *Options) engineOptions(seed uint64) []force.Option {
	opts := []force.Option{
		force.WithSeed(seed),
		force.WithIterations(o.iterations()),
		force.WithInitializer(o.initializer()),
	}
	if o.Temperature != 0 {
		opts = append(opts, force.WithTemperature(o.Temperature))
	}
	if o.Cooling != 0 {
		opts = append(opts, force.WithCooling(o.Cooling))
	}
	if o.Repulsion != 0 {
		opts = append(opts, force.WithRepulsion(o.Repulsion))
	}
	if o.Attraction != 0 {
		opts = append(opts, force.WithAttraction(o.Attraction))
	}
	return opts
}

func (o *Options) initializer() force.Initializer {
	switch o.Init {
	case InitGroups:
		return force.GroupAnchors(force.SkillAnchors, force.DefaultAnchorRadius, force.DefaultAnchorJitter)
	case InitLayers:
		return force.Layers(force.ArchitectureRows, force.DefaultLayerPadding)
	default:
		return force.Uniform
	}
}

// ReseedLayout returns a copy of opts with a fresh random seed.
func ReseedLayout(opts Options) Options {
	opts.Seed = rand.Uint64()
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	return opts
}

// checkLayout verifies a cached layout still matches the options that keyed it.
func checkLayout(l graph.Layout, opts Options) error {
	if l.Dims != opts.Dims {
		return errors.New(errors.ErrCodeInvalidLayout, "cached layout has %d dims, want %d", l.Dims, opts.Dims)
	}
	return l.Validate()
}
