/*
Package walk implements a single-width, mostly self-avoiding random walk on a
finite square grid.

The engine owns an occupancy grid and a single agent with a position and a
heading. Each Step marks the agent's current cell with probability
1-ForgetProb, enumerates the three relative moves (straight, left, right),
filters them against the grid bounds and the self-avoidance rule, and picks
one stochastically, preferring turns with probability TurnProb. When no move
survives the engine reports itself trapped and stays trapped until Reset.

The self-avoidance rule reads the committed grid: a cell the agent occupied
but skipped marking (ForgetProb) imposes no constraint on later moves, so the
trail is self-avoiding with respect to the marked cells, not the agent's full
trajectory. That asymmetry is intentional and produces the dashed trails a
non-zero ForgetProb is for.

The engine is synchronous and unsynchronized; one goroutine drives it. It
never tracks a step budget, callers stop calling Step when their own budget
runs out or Trapped reports true.
*/
package walk

import (
	"errors"
	"math/rand"
	"time"
)

// Engine configuration errors.
var (
	ErrInvalidSize       = errors.New("grid size must be positive")
	ErrInvalidTurnProb   = errors.New("turn probability must be in [0, 1]")
	ErrInvalidForgetProb = errors.New("forget probability must be in [0, 1]")
)

// Config holds the immutable parameters of an engine instance. Changing them
// requires a new engine.
type Config struct {
	Size       int     // grid dimension, Size x Size cells
	TurnProb   float64 // probability of preferring an available turn over straight
	ForgetProb float64 // probability of not marking the current cell on a tick
}

// Validate checks the configuration ranges. New rejects, never clamps.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return ErrInvalidSize
	}
	if c.TurnProb < 0 || c.TurnProb > 1 {
		return ErrInvalidTurnProb
	}
	if c.ForgetProb < 0 || c.ForgetProb > 1 {
		return ErrInvalidForgetProb
	}
	return nil
}

// Agent is the walker's position and heading.
type Agent struct {
	Pos     CellPosition
	Heading Direction
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the engine's random source. Tests fix seeds through this.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// Engine owns one walk: the occupancy grid, the agent, and the trapped flag.
type Engine struct {
	cfg     Config
	grid    *Grid
	agent   Agent
	trapped bool
	rng     *rand.Rand
}

// New creates an engine with the given configuration and resets it. The
// configuration is validated here; it is never clamped.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.Reset()
	return e, nil
}

// Reset clears the grid, places the agent uniformly inside a small window
// centered on the grid with a uniformly random heading, and clears the
// trapped flag.
func (e *Engine) Reset() {
	e.grid = newGrid(e.cfg.Size)
	e.agent = Agent{
		Pos:     e.randomStart(),
		Heading: Direction(e.rng.Intn(4)),
	}
	e.trapped = false
}

// randomStart draws each axis uniformly from [size/2-2, size/2+2),
// intersected with [0, size) so grids smaller than 4 still start in bounds.
func (e *Engine) randomStart() CellPosition {
	lo := max(0, e.cfg.Size/2-2)
	hi := min(e.cfg.Size, e.cfg.Size/2+2)
	return CellPosition{
		Row: lo + e.rng.Intn(hi-lo),
		Col: lo + e.rng.Intn(hi-lo),
	}
}

// Step advances the walk by one tick. Once the engine is trapped the call is
// a no-op.
//
// Marking happens before the move and never blocks it: the current cell
// joins the trail with probability 1-ForgetProb regardless of whether a
// valid move exists.
func (e *Engine) Step() {
	if e.trapped {
		return
	}

	if e.rng.Float64() > e.cfg.ForgetProb {
		e.grid.mark(e.agent.Pos)
	}

	var candidates [len(relMoves)]Agent
	var accepted [len(relMoves)]bool
	for _, m := range relMoves {
		heading := e.agent.Heading.Turned(m.headingDelta())
		vec := heading.Vector()
		pos := CellPosition{Row: e.agent.Pos.Row + vec.Row, Col: e.agent.Pos.Col + vec.Col}

		if !e.grid.InBound(pos.Row, pos.Col) {
			continue
		}
		if !e.validMove(pos) {
			continue
		}

		candidates[m] = Agent{Pos: pos, Heading: heading}
		accepted[m] = true
	}

	var turns []relMove
	if accepted[moveLeft] {
		turns = append(turns, moveLeft)
	}
	if accepted[moveRight] {
		turns = append(turns, moveRight)
	}

	var chosen relMove
	switch {
	case accepted[moveStraight] && len(turns) > 0:
		if e.rng.Float64() < e.cfg.TurnProb {
			chosen = turns[e.rng.Intn(len(turns))]
		} else {
			chosen = moveStraight
		}
	case len(turns) > 0:
		chosen = turns[e.rng.Intn(len(turns))]
	case accepted[moveStraight]:
		chosen = moveStraight
	default:
		e.trapped = true
		return
	}

	e.agent = candidates[chosen]
}

// validMove reports whether the agent may enter target. The target must be
// unvisited, and none of its cardinal neighbors may be visited except the
// cell the agent is extending from. The check reads the committed grid only.
func (e *Engine) validMove(target CellPosition) bool {
	if e.grid.At(target.Row, target.Col) != Unvisited {
		return false
	}

	for d := Up; d <= Left; d++ {
		vec := d.Vector()
		nbr := CellPosition{Row: target.Row + vec.Row, Col: target.Col + vec.Col}

		// The connecting edge back to the agent is always allowed.
		if nbr == e.agent.Pos {
			continue
		}
		if !e.grid.InBound(nbr.Row, nbr.Col) {
			continue
		}
		if e.grid.At(nbr.Row, nbr.Col) != Unvisited {
			return false
		}
	}
	return true
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Grid exposes the occupancy grid for rendering and export. Callers must not
// retain it across Reset.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Agent returns the walker's current position and heading.
func (e *Engine) Agent() Agent {
	return e.agent
}

// Trapped reports whether the walk has no valid move left. It is sticky
// until Reset.
func (e *Engine) Trapped() bool {
	return e.trapped
}
