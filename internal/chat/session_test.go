package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gauchoeats/gaucho/internal/gateway"
	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/pkg/logger"
)

func TestSession_Send_AgainstBackend(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_ = json.NewEncoder(w).Encode("Grilled Chicken at De La Guerra")
	}))
	defer srv.Close()

	client := gateway.New(srv.URL, 5*time.Second, logger.Discard())
	s := NewSession(client, 1, logger.Discard())

	reply, sent := s.Send(context.Background(), "chicken")
	if !sent {
		t.Fatal("expected query to be sent")
	}

	if want := "/recommend?user_query=chicken&user_id=1&daily_query_number=1"; gotURI != want {
		t.Errorf("request URI = %s, want %s", gotURI, want)
	}
	if reply.Role != models.RoleBot || reply.Text != "Grilled Chicken at De La Guerra" {
		t.Errorf("unexpected reply %+v", reply)
	}

	transcript := s.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(transcript))
	}
	if transcript[0] != (models.ChatMessage{Role: models.RoleUser, Text: "chicken"}) {
		t.Errorf("unexpected first message %+v", transcript[0])
	}
	if transcript[1] != reply {
		t.Errorf("unexpected second message %+v", transcript[1])
	}
}

func TestSession_Send_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSession(gateway.New(srv.URL, 5*time.Second, logger.Discard()), 1, logger.Discard())

	reply, _ := s.Send(context.Background(), "pasta")
	if reply.Text != ErrorReply {
		t.Errorf("expected %q, got %q", ErrorReply, reply.Text)
	}

	transcript := s.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected user message plus error reply, got %d messages", len(transcript))
	}
	if transcript[0].Role != models.RoleUser || transcript[1].Text != "Error fetching response." {
		t.Errorf("unexpected transcript %+v", transcript)
	}
}

func TestSession_Send_NullReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	s := NewSession(gateway.New(srv.URL, 5*time.Second, logger.Discard()), 1, logger.Discard())

	reply, sent := s.Send(context.Background(), "burrito")
	if !sent {
		t.Fatal("expected query to be sent")
	}
	if reply.Role != models.RoleBot || reply.Text != ErrorReply {
		t.Errorf("expected bot error reply, got %+v", reply)
	}
}

type recordingRecommender struct {
	requests []gateway.RecommendRequest
}

func (r *recordingRecommender) Recommend(ctx context.Context, req gateway.RecommendRequest) (string, error) {
	r.requests = append(r.requests, req)
	return "ok", nil
}

func TestSession_CounterIncrementsPerSend(t *testing.T) {
	rec := &recordingRecommender{}
	s := NewSession(rec, 3, logger.Discard())

	for _, q := range []string{"tacos", "salad", "soup"} {
		s.Send(context.Background(), q)
	}

	if len(rec.requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(rec.requests))
	}
	for i, req := range rec.requests {
		if req.DailyQueryNumber != i+1 {
			t.Errorf("request %d counter = %d, want %d", i, req.DailyQueryNumber, i+1)
		}
		if req.UserID != 3 {
			t.Errorf("request %d user = %d, want 3", i, req.UserID)
		}
	}
	if s.QueryCount() != 3 {
		t.Errorf("QueryCount() = %d, want 3", s.QueryCount())
	}
	if len(s.Transcript()) != 6 {
		t.Errorf("expected 6 messages, got %d", len(s.Transcript()))
	}
}

func TestSession_EmptyInputIgnored(t *testing.T) {
	rec := &recordingRecommender{}
	s := NewSession(rec, 1, logger.Discard())

	for _, q := range []string{"", "   "} {
		if _, sent := s.Send(context.Background(), q); sent {
			t.Errorf("expected %q to be ignored", q)
		}
	}

	if len(rec.requests) != 0 || len(s.Transcript()) != 0 || s.QueryCount() != 0 {
		t.Error("empty input must not change the session")
	}
}

func TestSession_TranscriptIsCopy(t *testing.T) {
	s := NewSession(&recordingRecommender{}, 1, logger.Discard())
	s.Send(context.Background(), "rice")

	tr := s.Transcript()
	tr[0].Text = "changed"

	if s.Transcript()[0].Text != "rice" {
		t.Error("transcript mutated through returned slice")
	}
}
