package force

import (
	"math/rand/v2"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Simulation defaults.
const (
	DefaultIterations2D = 50
	DefaultIterations3D = 60
	DefaultTemperature  = 100.0
	DefaultCooling      = 0.95
	DefaultAttraction   = 0.1
	DefaultStep         = 0.01
	DefaultMinDistance  = 0.1
)

// Option configures a single [Compute] call.
type Option func(*config)

type config struct {
	iterations  int
	temperature float64
	cooling     float64
	repulsion   float64 // 0 means derive from k
	attraction  float64
	step        float64
	minDistance float64
	seed        uint64
	seeded      bool
	rng         *rand.Rand
	init        Initializer
}

func defaultConfig(dims int) config {
	iterations := DefaultIterations2D
	if dims == 3 {
		iterations = DefaultIterations3D
	}
	return config{
		iterations:  iterations,
		temperature: DefaultTemperature,
		cooling:     DefaultCooling,
		attraction:  DefaultAttraction,
		step:        DefaultStep,
		minDistance: DefaultMinDistance,
		init:        Uniform,
	}
}

// WithIterations sets the number of simulation steps. Zero keeps the initial placement.
func WithIterations(n int) Option { return func(c *config) { c.iterations = n } }

// WithTemperature sets the initial temperature T0.
func WithTemperature(t float64) Option { return func(c *config) { c.temperature = t } }

// WithCooling sets the geometric cooling rate c; the temperature at iteration i is T0·cⁱ.
func WithCooling(rate float64) Option { return func(c *config) { c.cooling = rate } }

// WithRepulsion sets the repulsion constant k_r explicitly.
// Passing 0 restores the derived default k_a·k³.
func WithRepulsion(kr float64) Option { return func(c *config) { c.repulsion = kr } }

// WithAttraction sets the attraction scale k_a.
func WithAttraction(ka float64) Option { return func(c *config) { c.attraction = ka } }

// WithStep sets the fixed factor applied to force × temperature.
func WithStep(step float64) Option { return func(c *config) { c.step = step } }

// WithMinDistance sets the distance floor used in force computations.
func WithMinDistance(d float64) Option { return func(c *config) { c.minDistance = d } }

// WithSeed pins the random source so identical inputs yield identical layouts.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithRand uses a caller-owned random source. It takes precedence over [WithSeed].
func WithRand(rng *rand.Rand) Option { return func(c *config) { c.rng = rng } }

// WithInitializer replaces the uniform initial placement. Nil restores [Uniform].
func WithInitializer(fn Initializer) Option {
	return func(c *config) {
		if fn == nil {
			fn = Uniform
		}
		c.init = fn
	}
}

func (c *config) validate() error {
	if err := errors.ValidateIterations(c.iterations); err != nil {
		return err
	}
	if err := errors.ValidateCooling(c.cooling); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("temperature", c.temperature); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("repulsion", c.repulsion); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("attraction", c.attraction); err != nil {
		return err
	}
	if err := errors.ValidatePositive("step", c.step); err != nil {
		return err
	}
	return errors.ValidatePositive("min distance", c.minDistance)
}

// source returns the random stream for one call.
func (c *config) source() *rand.Rand {
	if c.rng != nil {
		return c.rng
	}
	seed := c.seed
	if !c.seeded {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// repulsionFor resolves k_r for optimal distance k.
func (c *config) repulsionFor(k float64) float64 {
	if c.repulsion > 0 {
		return c.repulsion
	}
	return c.attraction * k * k * k
}
