// Package inmemory is a channel-backed queue implementing both sides of
// the jobs broker contract. Suitable for single-instance deployments and
// tests; a multi-instance deployment would swap in a real broker behind
// the same interfaces.
package inmemory

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rogerio-castellano/ledger-search/internal/jobs"
)

type Queue struct {
	messages  chan jobs.SearchJobMessage
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	started   bool
}

// NewQueue creates a queue. bufferSize determines how many messages can be
// pending before PublishSearchJob blocks.
func NewQueue(bufferSize int) *Queue {
	return &Queue{
		messages:  make(chan jobs.SearchJobMessage, bufferSize),
		closeChan: make(chan struct{}),
	}
}

func (q *Queue) PublishSearchJob(ctx context.Context, msg jobs.SearchJobMessage) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return fmt.Errorf("queue is closed")
	}
}

// Start launches the consume loop in the background. Handler errors are
// logged and the loop continues; job-level failure state is the worker's
// responsibility, not the queue's.
func (q *Queue) Start(ctx context.Context, handler jobs.Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return fmt.Errorf("consumer already started")
	}
	q.started = true

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case msg, ok := <-q.messages:
				if !ok {
					return
				}
				if err := handler(ctx, msg); err != nil {
					log.Printf("search job %s: handler error: %v", msg.JobID, err)
				}
			case <-ctx.Done():
				return
			case <-q.closeChan:
				return
			}
		}
	}()
	return nil
}

func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.closeChan)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Close() error {
	return q.Stop(context.Background())
}
