package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/trailgen-api/domain"
	"github.com/beka-birhanu/trailgen-api/logging"
	"github.com/beka-birhanu/trailgen-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTrailRepo is an in-memory TrailRepo for service tests.
type memTrailRepo struct {
	sync.Mutex
	trails map[uuid.UUID]*dmn.Trail
}

func newMemTrailRepo() *memTrailRepo {
	return &memTrailRepo{trails: make(map[uuid.UUID]*dmn.Trail)}
}

func (r *memTrailRepo) Save(trail *dmn.Trail) error {
	r.Lock()
	defer r.Unlock()
	copied := *trail
	r.trails[trail.ID] = &copied
	return nil
}

func (r *memTrailRepo) ByID(id uuid.UUID) (*dmn.Trail, error) {
	r.Lock()
	defer r.Unlock()
	trail, ok := r.trails[id]
	if !ok {
		return nil, errors.New("trail not found")
	}
	copied := *trail
	return &copied, nil
}

func (r *memTrailRepo) ByOwner(ownerID uuid.UUID) ([]*dmn.Trail, error) {
	r.Lock()
	defer r.Unlock()
	var owned []*dmn.Trail
	for _, trail := range r.trails {
		if trail.OwnerID == ownerID {
			copied := *trail
			owned = append(owned, &copied)
		}
	}
	return owned, nil
}

func testLogger(t *testing.T) i.Logger {
	t.Helper()
	logger, err := logging.New("TEST", "", io.Discard)
	require.NoError(t, err)
	return logger
}

func newTestGenerator(t *testing.T, repo i.TrailRepo, stepLimit int) i.TrailGenerator {
	t.Helper()
	gen, err := NewGenerator(&GeneratorConfig{
		TrailRepo: repo,
		Logger:    testLogger(t),
		StepLimit: stepLimit,
	})
	require.NoError(t, err)
	return gen
}

func pendingTrail(t *testing.T, repo *memTrailRepo, cfg dmn.TrailConfig) *dmn.Trail {
	t.Helper()
	trail, err := dmn.NewTrail(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Save(trail))
	return trail
}

func TestGeneratorGenerate(t *testing.T) {
	t.Run("bounded run finishes within its budget", func(t *testing.T) {
		repo := newMemTrailRepo()
		trail := pendingTrail(t, repo, dmn.TrailConfig{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Size:       15,
			Tortuosity: 0.5,
			Sparsity:   0,
			MaxSteps:   50,
		})
		gen := newTestGenerator(t, repo, 0)

		err := gen.Generate(context.Background(), trail.ID)
		require.NoError(t, err)

		got, err := repo.ByID(trail.ID)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrailStatusDone, got.Status)
		assert.LessOrEqual(t, got.Steps, 50)
		assert.NotEmpty(t, got.Cells)
		assert.False(t, got.FinishedAt.IsZero())
		for _, cell := range got.Cells {
			assert.GreaterOrEqual(t, cell.Row, 0)
			assert.Less(t, cell.Row, 15)
			assert.GreaterOrEqual(t, cell.Col, 0)
			assert.Less(t, cell.Col, 15)
		}
	})

	t.Run("unbounded run is capped by the service step limit", func(t *testing.T) {
		repo := newMemTrailRepo()
		// Sparsity 1 never marks, so the walk can never trap; only the
		// service ceiling stops it.
		trail := pendingTrail(t, repo, dmn.TrailConfig{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Size:       9,
			Tortuosity: 0.5,
			Sparsity:   1,
			MaxSteps:   0,
		})
		gen := newTestGenerator(t, repo, 200)

		err := gen.Generate(context.Background(), trail.ID)
		require.NoError(t, err)

		got, err := repo.ByID(trail.ID)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrailStatusDone, got.Status)
		assert.Equal(t, 200, got.Steps)
		assert.False(t, got.Trapped)
		assert.Empty(t, got.Cells)
	})

	t.Run("small grid traps before a generous budget", func(t *testing.T) {
		repo := newMemTrailRepo()
		trail := pendingTrail(t, repo, dmn.TrailConfig{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Size:       4,
			Tortuosity: 0.5,
			Sparsity:   0,
			MaxSteps:   0,
		})
		gen := newTestGenerator(t, repo, 10000)

		err := gen.Generate(context.Background(), trail.ID)
		require.NoError(t, err)

		got, err := repo.ByID(trail.ID)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrailStatusDone, got.Status)
		assert.True(t, got.Trapped)
		assert.Less(t, got.Steps, 10000)
	})

	t.Run("unknown trail", func(t *testing.T) {
		gen := newTestGenerator(t, newMemTrailRepo(), 0)
		assert.Error(t, gen.Generate(context.Background(), uuid.New()))
	})

	t.Run("non-pending trail is skipped", func(t *testing.T) {
		repo := newMemTrailRepo()
		trail := pendingTrail(t, repo, dmn.TrailConfig{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Size:       10,
			Tortuosity: 0.5,
			Sparsity:   0,
			MaxSteps:   10,
		})
		trail.Status = dmn.TrailStatusDone
		require.NoError(t, repo.Save(trail))
		gen := newTestGenerator(t, repo, 0)

		err := gen.Generate(context.Background(), trail.ID)

		assert.ErrorIs(t, err, ErrTrailNotPending)
	})

	t.Run("canceled context fails the trail", func(t *testing.T) {
		repo := newMemTrailRepo()
		trail := pendingTrail(t, repo, dmn.TrailConfig{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Size:       10,
			Tortuosity: 0.5,
			Sparsity:   0,
			MaxSteps:   10,
		})
		gen := newTestGenerator(t, repo, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := gen.Generate(ctx, trail.ID)

		assert.ErrorIs(t, err, context.Canceled)
		got, repoErr := repo.ByID(trail.ID)
		require.NoError(t, repoErr)
		assert.Equal(t, dmn.TrailStatusFailed, got.Status)
	})
}
