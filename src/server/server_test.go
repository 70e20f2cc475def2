package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rate-relay/src/logger"
)

func testServer(source *stubSource) *RelayServer {
	cfg := testConfig()
	cfg.Name = "test-relay"
	cfg.Host = "localhost"
	cfg.Port = 8080
	return NewRelayServer(cfg, logger.NewLogger("server-test"), source)
}

// -----------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	s := testServer(&stubSource{})
	s.registry.Register(&fakeConn{addr: "127.0.0.1:1000"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	s.engine.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"connections":1`) {
		t.Errorf("body = %s", body)
	}
}

// -----------------------------------------------------------------------------

func TestRatesEndpointRejectsBadDate(t *testing.T) {
	s := testServer(&stubSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rates/2024-01-01", nil)
	s.engine.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// -----------------------------------------------------------------------------

func TestRatesEndpointServesRecord(t *testing.T) {
	source := &stubSource{record: stubRecord()}
	s := testServer(source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rates/01.01.2024", nil)
	s.engine.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if source.lastDate != "01.01.2024" {
		t.Errorf("fetch date = %q", source.lastDate)
	}
	body := w.Body.String()
	for _, want := range []string{"01.01.2024", "USD", "EUR"} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %q", body, want)
		}
	}
}

// -----------------------------------------------------------------------------

func TestRatesEndpointReportsFetchFailure(t *testing.T) {
	source := &stubSource{err: http.ErrHandlerTimeout}
	s := testServer(source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rates/01.01.2024", nil)
	s.engine.ServeHTTP(w, req)

	if w.Code != 502 {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
