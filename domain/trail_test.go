package domain

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/trailgen-api/walk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrailConfig() TrailConfig {
	return TrailConfig{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Name:       "forest_loop",
		Size:       32,
		Tortuosity: 0.4,
		Sparsity:   0.2,
		MaxSteps:   500,
	}
}

func TestNewTrail(t *testing.T) {
	t.Run("valid config yields a pending trail", func(t *testing.T) {
		cfg := validTrailConfig()

		trail, err := NewTrail(cfg)

		require.NoError(t, err)
		assert.Equal(t, cfg.ID, trail.ID)
		assert.Equal(t, cfg.OwnerID, trail.OwnerID)
		assert.Equal(t, "forest_loop", trail.Name)
		assert.Equal(t, TrailStatusPending, trail.Status)
		assert.Zero(t, trail.Steps)
		assert.False(t, trail.Trapped)
		assert.Empty(t, trail.Cells)
		assert.False(t, trail.RequestedAt.IsZero())
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		cfg := validTrailConfig()
		cfg.Name = ""

		trail, err := NewTrail(cfg)

		require.NoError(t, err)
		assert.Equal(t, DefaultTrailName, trail.Name)
	})

	t.Run("invalid configs are rejected", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*TrailConfig)
			want   error
		}{
			{"name with path characters", func(c *TrailConfig) { c.Name = "../escape" }, ErrInvalidTrailName},
			{"name too long", func(c *TrailConfig) { c.Name = strings.Repeat("a", 65) }, ErrTrailNameTooLong},
			{"negative max steps", func(c *TrailConfig) { c.MaxSteps = -1 }, ErrNegativeMaxSteps},
			{"zero size", func(c *TrailConfig) { c.Size = 0 }, walk.ErrInvalidSize},
			{"tortuosity out of range", func(c *TrailConfig) { c.Tortuosity = 1.5 }, walk.ErrInvalidTurnProb},
			{"sparsity out of range", func(c *TrailConfig) { c.Sparsity = -0.5 }, walk.ErrInvalidForgetProb},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				cfg := validTrailConfig()
				tc.mutate(&cfg)

				_, err := NewTrail(cfg)

				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

}

func TestTrailFilename(t *testing.T) {
	trail := &Trail{Name: "ridge_07"}
	assert.Equal(t, "ridge_07.txt", trail.Filename())
}

func TestTrailExportText(t *testing.T) {
	trail := &Trail{
		Cells: []walk.CellPosition{
			{Row: 0, Col: 2},
			{Row: 1, Col: 0},
			{Row: 1, Col: 1},
		},
	}

	// One line per cell, written as (col, row).
	assert.Equal(t, "(2, 0)\n(0, 1)\n(1, 1)\n", string(trail.ExportText()))
}

func TestTrailExportTextEmpty(t *testing.T) {
	trail := &Trail{}
	assert.Empty(t, trail.ExportText())
}
