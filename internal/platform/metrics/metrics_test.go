package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/pets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	out := scrape(t)
	if !strings.Contains(out, `pethealth_http_requests_total{method="GET",route="/pets/{id}",status="202"} 2`) {
		t.Fatalf("expected route-pattern counter, got:\n%s", out)
	}
	if !strings.Contains(out, `route="unmatched",status="404"`) {
		t.Fatalf("expected unmatched route label")
	}
	if strings.Contains(out, `route="/pets/a"`) {
		t.Fatalf("raw paths must not become labels")
	}
}

func TestFetchAndStoreCollectors(t *testing.T) {
	FetchFailed("alerts")
	ObserveFetch("alerts", time.Now())
	ObserveStore("rest", "list_pets", time.Now())

	out := scrape(t)
	for _, want := range []string{
		`pethealth_fetch_failures_total{view="alerts"}`,
		`pethealth_fetch_duration_seconds_count{view="alerts"}`,
		`pethealth_store_latency_seconds_count{backend="rest",operation="list_pets"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
