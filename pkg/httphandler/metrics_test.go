package httphandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	toolset "github.com/mutablelogic/go-toolset"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	testutil "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrument_RecordsStatus(t *testing.T) {
	collector := metrics.NewCollector("test", nil)
	handler := instrument(collector, "/task", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/task", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", w.Code)
	}

	count, err := testutil.GatherAndCount(collector.Registry(), "test_http_requests_total")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 series, got %d", count)
	}
}

func TestInstrument_NilCollector(t *testing.T) {
	called := false
	handler := instrument(nil, "/task", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task", nil))
	if !called {
		t.Fatal("expected handler to be called")
	}
}

func TestMetricsHandler_Exposition(t *testing.T) {
	collector := metrics.NewCollector("test", nil)
	collector.RecordHTTPRequest(http.MethodPost, "/auth", http.StatusOK, time.Millisecond)
	_, item := MetricsHandler(collector)

	w := httptest.NewRecorder()
	item.Handler()(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "test_http_requests_total") {
		t.Fatalf("expected request counter in exposition")
	}
}

func TestHttpErr(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{toolset.ErrNotFound.With("task"), http.StatusNotFound},
		{toolset.ErrBadParameter.With("entity"), http.StatusBadRequest},
		{toolset.ErrConflict.With("failed"), http.StatusConflict},
		{toolset.ErrNotImplemented.With("generator"), http.StatusNotImplemented},
		{toolset.ErrTimeout.With("wait"), http.StatusGatewayTimeout},
		{toolset.ErrInternalServerError.With("upstream"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		w := httptest.NewRecorder()
		_ = httpresponse.Error(w, httpErr(test.err))
		if w.Code != test.status {
			t.Errorf("%v: expected %d, got %d", test.err, test.status, w.Code)
		}
	}
}
