package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn, &buf)

	log.Debug("debug message", nil)
	log.Info("info message", nil)
	log.Warn("warn message", nil)
	log.Error("error message", nil, errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold messages were logged: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error messages, got %q", out)
	}
}

func TestLogger_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Error("fetch failed", Fields{"url": "https://example.com", "attempt": 3}, errors.New("HTTP 401"))

	var e struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
		Error     string                 `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if e.Level != "ERROR" {
		t.Errorf("level = %q, want ERROR", e.Level)
	}
	if e.Message != "fetch failed" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Fields["url"] != "https://example.com" {
		t.Errorf("fields.url = %v", e.Fields["url"])
	}
	if e.Error != "HTTP 401" {
		t.Errorf("error = %q", e.Error)
	}
	if e.Timestamp == "" {
		t.Error("missing timestamp")
	}
}
