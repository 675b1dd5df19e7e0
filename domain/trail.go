package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/beka-birhanu/trailgen-api/walk"
	"github.com/google/uuid"
)

// DefaultTrailName is used when a generation request names no trail.
const DefaultTrailName = "untitled_trail"

const (
	trailNamePattern   = `^[a-zA-Z0-9_-]+$` // Safe for file names
	maxTrailNameLength = 64
)

var (
	trailNameRegex = regexp.MustCompile(trailNamePattern)

	ErrTrailNameTooLong = errors.New("trail name too long")
	ErrInvalidTrailName = errors.New("invalid trail name format")
	ErrNegativeMaxSteps = errors.New("max steps must not be negative")
)

// TrailStatus is the lifecycle state of a trail generation request.
type TrailStatus string

const (
	TrailStatusPending TrailStatus = "pending"
	TrailStatusRunning TrailStatus = "running"
	TrailStatusDone    TrailStatus = "done"
	TrailStatusFailed  TrailStatus = "failed"
)

// Trail represents the BSON version of a trail for database storage: the
// generation request together with its result once a run finished.
type Trail struct {
	ID          uuid.UUID           `bson:"_id"`
	OwnerID     uuid.UUID           `bson:"ownerId"`
	Name        string              `bson:"name"`
	Size        int                 `bson:"size"`
	Tortuosity  float64             `bson:"tortuosity"` // walk turn probability
	Sparsity    float64             `bson:"sparsity"`   // walk forget probability
	MaxSteps    int                 `bson:"maxSteps"`   // 0 means run until trapped
	Status      TrailStatus         `bson:"status"`
	Steps       int                 `bson:"steps"`
	Trapped     bool                `bson:"trapped"`
	Cells       []walk.CellPosition `bson:"cells"` // marked cells, row-major
	RequestedAt time.Time           `bson:"requestedAt"`
	FinishedAt  time.Time           `bson:"finishedAt,omitempty"`
}

// TrailConfig holds parameters for creating a pending Trail.
type TrailConfig struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Size       int
	Tortuosity float64
	Sparsity   float64
	MaxSteps   int
}

// NewTrail creates a pending Trail with the provided configuration. The walk
// parameters are validated here, once, so a queued request can no longer
// fail on configuration when a worker picks it up.
func NewTrail(config TrailConfig) (*Trail, error) {
	name := config.Name
	if name == "" {
		name = DefaultTrailName
	}
	if err := validateTrailName(name); err != nil {
		return nil, err
	}

	if config.MaxSteps < 0 {
		return nil, ErrNegativeMaxSteps
	}

	// Reuse the engine's own validation rather than restating its ranges.
	walkCfg := walk.Config{
		Size:       config.Size,
		TurnProb:   config.Tortuosity,
		ForgetProb: config.Sparsity,
	}
	if err := walkCfg.Validate(); err != nil {
		return nil, err
	}

	return &Trail{
		ID:          config.ID,
		OwnerID:     config.OwnerID,
		Name:        name,
		Size:        config.Size,
		Tortuosity:  config.Tortuosity,
		Sparsity:    config.Sparsity,
		MaxSteps:    config.MaxSteps,
		Status:      TrailStatusPending,
		RequestedAt: time.Now().UTC(),
	}, nil
}

// Filename returns the export file name derived from the trail name.
func (t *Trail) Filename() string {
	return t.Name + ".txt"
}

// ExportText renders the marked cells one per line as "(col, row)", in the
// row-major order the cells were collected in.
func (t *Trail) ExportText() []byte {
	var output strings.Builder
	for _, cell := range t.Cells {
		fmt.Fprintf(&output, "(%d, %d)\n", cell.Col, cell.Row)
	}
	return []byte(output.String())
}

// validateTrailName validates the trail name.
func validateTrailName(name string) error {
	if len(name) > maxTrailNameLength {
		return ErrTrailNameTooLong
	}
	if !trailNameRegex.MatchString(name) {
		return ErrInvalidTrailName
	}
	return nil
}
