// Package trailapi exposes trail generation over HTTP: requesting a run,
// polling its status, and downloading the finished coordinate list.
package trailapi

import (
	"time"

	dmn "github.com/beka-birhanu/trailgen-api/domain"
)

// GenerateRequest represents a request to generate a new trail.
//
// Tortuosity is the probability of preferring a turn over going straight,
// sparsity the probability of leaving a cell out of the trail; both must be
// in [0, 1]. MaxSteps 0 lets the walk run until it traps itself.
type GenerateRequest struct {
	Name       string  `json:"name"`
	Size       int     `json:"size" binding:"required"`
	Tortuosity float64 `json:"tortuosity"`
	Sparsity   float64 `json:"sparsity"`
	MaxSteps   int     `json:"max_steps"`
}

// GenerateResponse acknowledges a queued generation request.
type GenerateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TrailResponse represents a trail's metadata and, once done, its result
// summary. Cell coordinates are served by the export endpoint, not here.
type TrailResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int       `json:"size"`
	Tortuosity  float64   `json:"tortuosity"`
	Sparsity    float64   `json:"sparsity"`
	MaxSteps    int       `json:"max_steps"`
	Status      string    `json:"status"`
	Steps       int       `json:"steps"`
	Trapped     bool      `json:"trapped"`
	CellCount   int       `json:"cell_count"`
	RequestedAt time.Time `json:"requested_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
}

func newTrailResponse(trail *dmn.Trail) *TrailResponse {
	return &TrailResponse{
		ID:          trail.ID.String(),
		Name:        trail.Name,
		Size:        trail.Size,
		Tortuosity:  trail.Tortuosity,
		Sparsity:    trail.Sparsity,
		MaxSteps:    trail.MaxSteps,
		Status:      string(trail.Status),
		Steps:       trail.Steps,
		Trapped:     trail.Trapped,
		CellCount:   len(trail.Cells),
		RequestedAt: trail.RequestedAt,
		FinishedAt:  trail.FinishedAt,
	}
}
