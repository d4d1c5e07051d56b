package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/jobs"
)

func TestQueueDeliversPublishedMessages(t *testing.T) {
	q := NewQueue(4)

	var mu sync.Mutex
	var got []uuid.UUID
	delivered := make(chan struct{}, 4)

	err := q.Start(context.Background(), func(_ context.Context, msg jobs.SearchJobMessage) error {
		mu.Lock()
		got = append(got, msg.JobID)
		mu.Unlock()
		delivered <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range want {
		if err := q.PublishSearchJob(context.Background(), jobs.SearchJobMessage{JobID: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for range want {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for i, id := range want {
		if got[i] != id {
			t.Errorf("position %d: got %s, want %s (delivery must preserve order)", i, got[i], id)
		}
	}

	if err := q.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueSurvivesHandlerErrors(t *testing.T) {
	q := NewQueue(2)

	delivered := make(chan uuid.UUID, 2)
	err := q.Start(context.Background(), func(_ context.Context, msg jobs.SearchJobMessage) error {
		delivered <- msg.JobID
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, second := uuid.New(), uuid.New()
	q.PublishSearchJob(context.Background(), jobs.SearchJobMessage{JobID: first})
	q.PublishSearchJob(context.Background(), jobs.SearchJobMessage{JobID: second})

	for _, want := range []uuid.UUID{first, second} {
		select {
		case got := <-delivered:
			if got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("consume loop must keep running after a handler error")
		}
	}

	q.Stop(context.Background())
}

func TestQueueRejectsSecondStart(t *testing.T) {
	q := NewQueue(1)
	handler := func(context.Context, jobs.SearchJobMessage) error { return nil }

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.Start(context.Background(), handler); err == nil {
		t.Error("expected an error on double start")
	}

	q.Stop(context.Background())
}

func TestQueueRejectsPublishAfterStop(t *testing.T) {
	q := NewQueue(1)
	if err := q.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := q.PublishSearchJob(context.Background(), jobs.SearchJobMessage{JobID: uuid.New()})
	if err == nil {
		t.Error("expected an error publishing to a stopped queue")
	}
}

func TestQueuePublishHonorsContext(t *testing.T) {
	q := NewQueue(0) // unbuffered, no consumer

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := q.PublishSearchJob(ctx, jobs.SearchJobMessage{JobID: uuid.New()})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
