package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testQueue(t *testing.T) *Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewQueue(client, nil)
}

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	q := testQueue(t)
	ctx := context.Background()

	payload := EmailPayload{Email: "ana@x.com", Name: "Ana", Code: "ABC234"}
	if err := q.EnqueueEmail(ctx, payload); err != nil {
		t.Fatalf("EnqueueEmail() error = %v", err)
	}

	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}

	job, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	if job == nil {
		t.Fatal("Dequeue() returned no job")
	}
	if job.Type != JobTypeEmail {
		t.Errorf("job type = %s, want %s", job.Type, JobTypeEmail)
	}
	if job.ID == "" {
		t.Error("job ID empty")
	}

	var got EmailPayload
	if err := json.Unmarshal(job.Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}
}

func TestEnqueueOnePerRegistration(t *testing.T) {
	q := testQueue(t)
	ctx := context.Background()

	for _, email := range []string{"ana@x.com", "bea@x.com", "cleo@x.com"} {
		if err := q.EnqueueEmail(ctx, EmailPayload{Email: email, Name: "x", Code: "ABC234"}); err != nil {
			t.Fatalf("EnqueueEmail(%s) error = %v", email, err)
		}
	}

	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}

	// FIFO order.
	first, err := q.Dequeue(ctx)
	if err != nil || first == nil {
		t.Fatalf("Dequeue() = %v, %v", first, err)
	}
	var got EmailPayload
	if err := json.Unmarshal(first.Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.Email != "ana@x.com" {
		t.Errorf("first job email = %s, want ana@x.com", got.Email)
	}
}

func TestDequeueCancelled(t *testing.T) {
	q := testQueue(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := q.Dequeue(ctx); err == nil {
		t.Error("Dequeue() on empty queue with expiring context: error = nil, want context error")
	}
}

func TestDequeueDropsMalformedEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	q := NewQueue(client, nil)
	ctx := context.Background()

	if err := client.RPush(ctx, QueueEmails, "not-json").Err(); err != nil {
		t.Fatalf("rpush: %v", err)
	}
	job, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	if job != nil {
		t.Errorf("job = %+v, want nil for malformed entry", job)
	}
}
