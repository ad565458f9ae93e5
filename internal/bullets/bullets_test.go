package bullets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yulei/news-hub/internal/feed"
)

var sampleItem = feed.Item{
	ID: "a", Title: "headline", Summary: "short summary",
	Link: "https://example.com/a", Lang: "en",
}

func TestSummarizeDisabledByDefault(t *testing.T) {
	c := New("")
	if c.Enabled() {
		t.Fatalf("empty endpoint should disable the client")
	}
	if _, err := c.Summarize(context.Background(), sampleItem); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestSummarizeBulletsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 请求体必须是固定的透传契约
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body not json: %v", err)
		}
		if req["title"] != "headline" || req["url"] != "https://example.com/a" || req["lang"] != "en" {
			t.Errorf("unexpected request payload: %v", req)
		}
		_, _ = w.Write([]byte(`{"bullets":["point one","  point two  ",""]}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Summarize(context.Background(), sampleItem)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 2 || got[0] != "point one" || got[1] != "point two" {
		t.Fatalf("bullets = %v", got)
	}
}

func TestSummarizeTextResponseSplitsLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"first line\n\nsecond line\n"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Summarize(context.Background(), sampleItem)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 2 || got[0] != "first line" || got[1] != "second line" {
		t.Fatalf("lines = %v", got)
	}
}

func TestSummarizeNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Summarize(context.Background(), sampleItem); err == nil {
		t.Fatalf("non-200 status should be an error")
	}
}
