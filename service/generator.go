package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/trailgen-api/domain"
	"github.com/beka-birhanu/trailgen-api/service/i"
	"github.com/beka-birhanu/trailgen-api/walk"
	"github.com/google/uuid"
)

const (
	// defaultStepLimit caps unbounded runs. A walk that marks nothing
	// (sparsity near 1) never traps, so a ceiling is required to free the
	// worker.
	defaultStepLimit = 1 << 20

	// cancelCheckInterval is the number of steps between context checks.
	cancelCheckInterval = 1024
)

var (
	ErrTrailNotPending = errors.New("trail is not pending generation")
)

// GeneratorConfig holds the dependencies and limits of a Generator.
type GeneratorConfig struct {
	TrailRepo i.TrailRepo
	Logger    i.Logger
	StepLimit int // ceiling for unbounded runs; 0 uses the default
}

// Generator is the driver of the walk engine: it owns the step budget,
// drives Step until the budget runs out or the walk traps, and persists the
// result. The engine itself never sees the budget.
type Generator struct {
	trailRepo i.TrailRepo
	logger    i.Logger
	stepLimit int
}

// NewGenerator creates a Generator from the given configuration.
func NewGenerator(cfg *GeneratorConfig) (i.TrailGenerator, error) {
	if cfg == nil || cfg.TrailRepo == nil || cfg.Logger == nil {
		return nil, errors.New("generator requires a trail repo and a logger")
	}

	stepLimit := cfg.StepLimit
	if stepLimit <= 0 {
		stepLimit = defaultStepLimit
	}

	return &Generator{
		trailRepo: cfg.TrailRepo,
		logger:    cfg.Logger,
		stepLimit: stepLimit,
	}, nil
}

// Generate runs the walk for the pending trail and stores the marked cells.
// A failed run is recorded on the trail; it never takes the service down.
func (g *Generator) Generate(ctx context.Context, trailID uuid.UUID) error {
	trail, err := g.trailRepo.ByID(trailID)
	if err != nil {
		g.logger.Error(fmt.Sprintf("Loading trail %s: %v", trailID, err))
		return err
	}

	if trail.Status != dmn.TrailStatusPending {
		g.logger.Warning(fmt.Sprintf("Trail %s is %s, skipping generation", trail.ID, trail.Status))
		return ErrTrailNotPending
	}

	trail.Status = dmn.TrailStatusRunning
	if err := g.trailRepo.Save(trail); err != nil {
		g.logger.Error(fmt.Sprintf("Marking trail %s running: %v", trail.ID, err))
		return err
	}

	engine, err := walk.New(walk.Config{
		Size:       trail.Size,
		TurnProb:   trail.Tortuosity,
		ForgetProb: trail.Sparsity,
	})
	if err != nil {
		// Config was validated at request time; reaching this means the
		// stored document was tampered with or corrupted.
		return g.fail(trail, err)
	}

	steps, err := g.run(ctx, engine, trail.MaxSteps)
	if err != nil {
		return g.fail(trail, err)
	}

	trail.Steps = steps
	trail.Trapped = engine.Trapped()
	trail.Cells = engine.Grid().VisitedCells()
	trail.Status = dmn.TrailStatusDone
	trail.FinishedAt = time.Now().UTC()

	if err := g.trailRepo.Save(trail); err != nil {
		g.logger.Error(fmt.Sprintf("Saving trail %s result: %v", trail.ID, err))
		return err
	}

	g.logger.Info(fmt.Sprintf("Trail %s generated: %d steps, %d cells, trapped=%t", trail.ID, steps, len(trail.Cells), trail.Trapped))
	return nil
}

// run drives the engine. maxSteps 0 means run until trapped, bounded only by
// the service step limit.
func (g *Generator) run(ctx context.Context, engine *walk.Engine, maxSteps int) (int, error) {
	budget := g.stepLimit
	if maxSteps > 0 && maxSteps < budget {
		budget = maxSteps
	}

	steps := 0
	for !engine.Trapped() && steps < budget {
		if steps%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return steps, ctx.Err()
			default:
			}
		}
		engine.Step()
		steps++
	}
	return steps, nil
}

func (g *Generator) fail(trail *dmn.Trail, cause error) error {
	g.logger.Error(fmt.Sprintf("Generating trail %s: %v", trail.ID, cause))
	trail.Status = dmn.TrailStatusFailed
	trail.FinishedAt = time.Now().UTC()
	if err := g.trailRepo.Save(trail); err != nil {
		g.logger.Error(fmt.Sprintf("Marking trail %s failed: %v", trail.ID, err))
	}
	return cause
}
