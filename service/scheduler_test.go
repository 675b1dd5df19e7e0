package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSortedQueue is an in-memory SortedQueue for scheduler tests.
type memSortedQueue struct {
	sync.Mutex
	queues map[string][]scoredMember
}

type scoredMember struct {
	score  float64
	member string
}

func newMemSortedQueue() *memSortedQueue {
	return &memSortedQueue{queues: make(map[string][]scoredMember)}
}

func (q *memSortedQueue) Enqueue(_ context.Context, queueKey string, score float64, member string) error {
	q.Lock()
	defer q.Unlock()
	q.queues[queueKey] = append(q.queues[queueKey], scoredMember{score: score, member: member})
	sort.Slice(q.queues[queueKey], func(a, b int) bool {
		return q.queues[queueKey][a].score < q.queues[queueKey][b].score
	})
	return nil
}

func (q *memSortedQueue) DequeTops(_ context.Context, queueKey string, amount int64) ([]string, error) {
	q.Lock()
	defer q.Unlock()
	queue := q.queues[queueKey]
	if int64(len(queue)) < amount {
		amount = int64(len(queue))
	}
	var members []string
	for _, m := range queue[:amount] {
		members = append(members, m.member)
	}
	q.queues[queueKey] = queue[amount:]
	return members, nil
}

func (q *memSortedQueue) Count(_ context.Context, queueKey string) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.queues[queueKey]))
}

func TestSchedulerSchedule(t *testing.T) {
	queue := newMemSortedQueue()
	dispatched := make(chan []uuid.UUID, 1)

	scheduler, err := NewScheduler(queue, testLogger(t), nil)
	require.NoError(t, err)
	scheduler.SetGenerateHandler(func(IDs []uuid.UUID) {
		dispatched <- IDs
	})

	trailID := uuid.New()
	require.NoError(t, scheduler.Schedule(context.Background(), trailID, 32))

	select {
	case IDs := <-dispatched:
		assert.Equal(t, []uuid.UUID{trailID}, IDs)
	case <-time.After(2 * time.Second):
		t.Fatal("trail was never dispatched")
	}
}

func TestSchedulerBucketsBySize(t *testing.T) {
	scheduler, err := NewScheduler(newMemSortedQueue(), testLogger(t), &SchedulerOptions{
		Prefix:        "test",
		SizeTolerance: 9,
	})
	require.NoError(t, err)

	// Sizes within the tolerance share a bucket, others do not.
	assert.Equal(t, scheduler.queueKey(30), scheduler.queueKey(35))
	assert.NotEqual(t, scheduler.queueKey(30), scheduler.queueKey(45))
}

func TestSchedulerSkipsMalformedMembers(t *testing.T) {
	queue := newMemSortedQueue()
	dispatched := make(chan []uuid.UUID, 1)

	scheduler, err := NewScheduler(queue, testLogger(t), &SchedulerOptions{BatchSize: 2})
	require.NoError(t, err)
	scheduler.SetGenerateHandler(func(IDs []uuid.UUID) {
		dispatched <- IDs
	})

	// A malformed member next to a valid one; only the valid one survives.
	require.NoError(t, queue.Enqueue(context.Background(), scheduler.queueKey(16), 1, "not-a-uuid"))
	trailID := uuid.New()
	require.NoError(t, scheduler.Schedule(context.Background(), trailID, 16))

	select {
	case IDs := <-dispatched:
		assert.Equal(t, []uuid.UUID{trailID}, IDs)
	case <-time.After(2 * time.Second):
		t.Fatal("trail was never dispatched")
	}
}
