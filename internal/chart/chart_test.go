package chart

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mstrand/econcal/internal/market"
)

func marketServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := `{"chart":{"result":[{"meta":{"regularMarketPrice":102.5,"shortName":"Test Corp"},
		"timestamp":[1748860200,1748863800,1748867400],
		"indicators":{"quote":[{"open":[100,101,102],"high":[101,102,103],"low":[99,100,101],"close":[100,101.5,102.5]}]}}],"error":null}}`
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestRender(t *testing.T) {
	server := marketServer(t)
	defer server.Close()

	result, err := Render(context.Background(), market.New(server.URL), "tst", "1d")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !bytes.HasPrefix(result.PNG, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
	if result.Filename != "TST_1d_dark_chart.png" {
		t.Errorf("filename = %q", result.Filename)
	}
	if !strings.Contains(result.Caption, "Test Corp (TST) Chart (1d)") {
		t.Errorf("caption = %q", result.Caption)
	}
	if !strings.Contains(result.Caption, "Last Price: $102.50") {
		t.Errorf("caption missing last price: %q", result.Caption)
	}
	if !strings.Contains(result.Caption, "Change: +$2.50 (+2.50%)") {
		t.Errorf("caption missing change: %q", result.Caption)
	}
}

func TestRender_DefaultPeriod(t *testing.T) {
	server := marketServer(t)
	defer server.Close()

	result, err := Render(context.Background(), market.New(server.URL), "TST", "")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(result.Caption, "(1d)") {
		t.Errorf("caption = %q, want default 1d period", result.Caption)
	}
}

func TestRender_InvalidPeriod(t *testing.T) {
	server := marketServer(t)
	defer server.Close()

	_, err := Render(context.Background(), market.New(server.URL), "TST", "17y")
	if err == nil {
		t.Fatal("Render() accepted invalid period")
	}
	if !strings.Contains(err.Error(), "valid periods") {
		t.Errorf("error = %v, want valid-periods hint", err)
	}
}
