package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte("image data"))
	}))
	defer server.Close()

	data, err := NewClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "image data" {
		t.Errorf("Get() = %q, want %q", data, "image data")
	}
	if userAgent != "mp3tagger" {
		t.Errorf("User-Agent = %q, want %q", userAgent, "mp3tagger")
	}
}

func TestClient_GetStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	if _, err := NewClient().Get(context.Background(), server.URL); err == nil {
		t.Error("Get() should fail on 404")
	}
}

func TestClient_GetTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte{'x'}, MaxBodySize+1))
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Get() error = %v, want ErrTooLarge", err)
	}
}

func TestClient_GetCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient().Get(ctx, server.URL); err == nil {
		t.Error("Get() should fail with a cancelled context")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/cover.jpg", true},
		{"http://example.com/cover.jpg", true},
		{"/music/cover.jpg", false},
		{"cover.jpg", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
