package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rate-relay/src/helpers"
	"rate-relay/src/logger"
	"rate-relay/src/models"
)

func testManager(t *testing.T) *AsyncNetworkManager {
	t.Helper()
	cfg := &models.MConfig{
		Network: models.MNetworkConfig{RequestTimeout: 2, UserAgent: "rate-relay-test"},
	}
	return NewAsyncNetworkManager(cfg, logger.NewLogger("network-test"))
}

// -----------------------------------------------------------------------------

func TestGetReturnsBody(t *testing.T) {
	var gotQuery string
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	nm := testManager(t)
	body, err := nm.Get(context.Background(), srv.URL, map[string]string{"json": "", "date": "01.01.2024"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
	if gotAgent != "rate-relay-test" {
		t.Errorf("user agent = %q", gotAgent)
	}
	if gotQuery != "date=01.01.2024&json=" {
		t.Errorf("query = %q", gotQuery)
	}
}

// -----------------------------------------------------------------------------

func TestGetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	nm := testManager(t)
	_, err := nm.Get(context.Background(), srv.URL, nil)

	var statusErr *helpers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *helpers.StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", statusErr.Code)
	}
}

// -----------------------------------------------------------------------------

func TestGetConnectionError(t *testing.T) {
	nm := testManager(t)
	// Nothing listens here.
	if _, err := nm.Get(context.Background(), "http://127.0.0.1:1", nil); err == nil {
		t.Fatal("expected a connection error")
	}
}
