package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/trailgen-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultQueuePrefix   = "trailgen"
	defaultBatchSize     = 1
	defaultSizeTolerance = 0
	queueSizeKeyFmt      = "%s:queue:size_%d"
)

// handlerFunc is called with the IDs of trails popped for generation.
type handlerFunc func(IDs []uuid.UUID)

// SchedulerOptions configures a Scheduler.
type SchedulerOptions struct {
	// Prefix namespaces the queue keys.
	Prefix string

	// Handler is called with dequeued trail IDs.
	Handler handlerFunc

	// BatchSize is the number of trails popped per dispatch.
	BatchSize int64

	// SizeTolerance groups grid sizes into queue buckets so large grids
	// drain separately from small ones.
	SizeTolerance int
}

// Scheduler queues trail generation requests in a sorted queue, ordered by
// request time, and dispatches them to the handler in batches.
type Scheduler struct {
	sortedQueue i.SortedQueue
	logger      i.Logger
	opts        *SchedulerOptions
}

// NewScheduler creates a Scheduler over the given sorted queue.
func NewScheduler(sortedQueue i.SortedQueue, logger i.Logger, opts *SchedulerOptions) (*Scheduler, error) {
	if opts == nil {
		opts = &SchedulerOptions{
			Prefix:    defaultQueuePrefix,
			BatchSize: defaultBatchSize,
		}
	}

	if opts.Prefix == "" {
		opts.Prefix = defaultQueuePrefix
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	if opts.SizeTolerance < 0 {
		opts.SizeTolerance = defaultSizeTolerance
	}

	return &Scheduler{
		sortedQueue: sortedQueue,
		logger:      logger,
		opts:        opts,
	}, nil
}

// Schedule enqueues the trail for generation, scored by request time, and
// triggers a dispatch for its size bucket.
func (s *Scheduler) Schedule(ctx context.Context, trailID uuid.UUID, size int) error {
	s.logger.Info(fmt.Sprintf("Queuing trail for generation: ID=%s Size=%d", trailID, size))

	score := float64(time.Now().UnixNano())
	if err := s.sortedQueue.Enqueue(ctx, s.queueKey(size), score, trailID.String()); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to enqueue trail: %s", err))
		return err
	}

	go s.dispatch(ctx, size)
	return nil
}

// dispatch pops up to BatchSize trails from the bucket and hands them to the
// handler.
func (s *Scheduler) dispatch(ctx context.Context, size int) {
	queueKey := s.queueKey(size)
	if s.sortedQueue.Count(ctx, queueKey) < 1 {
		return
	}

	rawIDs, err := s.sortedQueue.DequeTops(ctx, queueKey, s.opts.BatchSize)
	if err != nil {
		s.logger.Error(fmt.Sprintf("obtaining dispatch lock: %s", err))
		return
	}

	var trailIDs []uuid.UUID
	for _, raw := range rawIDs {
		if id, err := uuid.Parse(raw); err == nil {
			trailIDs = append(trailIDs, id)
		} else {
			s.logger.Warning(fmt.Sprintf("Non-UUID value in queue: %s", raw))
		}
	}

	if len(trailIDs) == 0 {
		return
	}

	if s.opts.Handler != nil {
		s.logger.Info(fmt.Sprintf("Dispatching trails for generation: %v", trailIDs))
		go s.opts.Handler(trailIDs)
	}
}

// SetGenerateHandler sets the function called with dequeued trail IDs.
func (s *Scheduler) SetGenerateHandler(f func([]uuid.UUID)) {
	s.opts.Handler = f
}

func (s *Scheduler) queueKey(size int) string {
	return fmt.Sprintf(queueSizeKeyFmt, s.opts.Prefix, scale(size, s.opts.SizeTolerance))
}

// scale groups nearby values into the same bucket.
func scale(value, tolerance int) int {
	return value / (tolerance + 1)
}
