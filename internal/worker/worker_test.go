package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/hotend/giveaway-backend/config"
	"github.com/hotend/giveaway-backend/internal/mailer"
	"github.com/hotend/giveaway-backend/pkg/queue"
)

func testProcessor(t *testing.T, postmarkURL string) (*EmailProcessor, *queue.Queue) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	q := queue.NewQueue(client, nil)
	svc := mailer.NewService(
		mailer.NewClient(config.PostmarkConfig{Token: "tok", FromEmail: "info@hotend.cz", APIURL: postmarkURL}),
		mailer.NewTemplates(config.ContestConfig{StreamURL: "https://example.com/live", StreamDate: "29. 12. 2025 v 19:00"}),
		nil,
		nil,
	)
	return NewEmailProcessor(svc, q, nil), q
}

func TestProcessDeliversEmail(t *testing.T) {
	var delivered mailerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&delivered); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"ErrorCode":0}`))
	}))
	defer srv.Close()

	p, q := testProcessor(t, srv.URL)
	ctx := context.Background()

	if err := q.EnqueueEmail(ctx, queue.EmailPayload{Email: "ana@x.com", Name: "Ana", Code: "ABC234"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	job, err := q.Dequeue(ctx)
	if err != nil || job == nil {
		t.Fatalf("dequeue: %v, %v", job, err)
	}

	if err := p.Process(ctx, job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if delivered.To != "ana@x.com" {
		t.Errorf("delivered to %q, want ana@x.com", delivered.To)
	}
}

type mailerRequest struct {
	To      string `json:"To"`
	Subject string `json:"Subject"`
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	p, _ := testProcessor(t, "http://127.0.0.1:0")
	job := &queue.Job{ID: "x", Type: "recording_upload", Payload: json.RawMessage(`{}`)}
	if err := p.Process(context.Background(), job); err == nil {
		t.Error("Process() error = nil, want unknown job type error")
	}
}

func TestProcessRejectsMalformedPayload(t *testing.T) {
	p, _ := testProcessor(t, "http://127.0.0.1:0")
	job := &queue.Job{ID: "x", Type: queue.JobTypeEmail, Payload: json.RawMessage(`{`)}
	if err := p.Process(context.Background(), job); err == nil {
		t.Error("Process() error = nil, want unmarshal error")
	}
}
