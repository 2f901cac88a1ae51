package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFetch_FirstURLWins(t *testing.T) {
	var warmups int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			atomic.AddInt32(&warmups, 1)
		case "/calendar-a":
			if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
				t.Errorf("missing browser User-Agent, got %q", ua)
			}
			w.Write([]byte("<html>calendar</html>"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(WithURLs(server.URL, []string{server.URL + "/calendar-a", server.URL + "/calendar-b"}))
	html, sourceURL, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if html != "<html>calendar</html>" {
		t.Errorf("html = %q", html)
	}
	if sourceURL != server.URL+"/calendar-a" {
		t.Errorf("sourceURL = %q", sourceURL)
	}
	if atomic.LoadInt32(&warmups) == 0 {
		t.Error("warm-up request never hit the base URL")
	}
}

func TestFetch_FallsBackToNextURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			w.WriteHeader(http.StatusUnauthorized)
		case "/good":
			w.Write([]byte("<html>ok</html>"))
		}
	}))
	defer server.Close()

	client := New(WithURLs(server.URL, []string{server.URL + "/bad", server.URL + "/good"}))
	html, sourceURL, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if html != "<html>ok</html>" {
		t.Errorf("html = %q", html)
	}
	if sourceURL != server.URL+"/good" {
		t.Errorf("sourceURL = %q", sourceURL)
	}
}

func TestFetch_ReportsLastError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client := New(WithURLs(server.URL, []string{server.URL + "/calendar"}))
	_, _, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("error = %v, want HTTP 401 reason", err)
	}
}

func TestFetch_SendsConfiguredCookie(t *testing.T) {
	var sawCookie atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar" {
			if r.Header.Get("Cookie") == "session=abc" {
				sawCookie.Store(true)
			}
			w.Write([]byte("<html>ok</html>"))
		}
	}))
	defer server.Close()

	client := New(WithURLs(server.URL, []string{server.URL + "/calendar"}), WithCookie("session=abc"))
	if _, _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !sawCookie.Load() {
		t.Error("configured cookie was not sent")
	}
}
