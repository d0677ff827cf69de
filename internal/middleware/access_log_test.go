package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-health-record/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Writer: &buf})

	h := chimw.RequestID(AuthContext(nil, nil)(AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/alerts", nil)
	req.Header.Set("X-Debug-User-ID", "u1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"msg=http request", "path=/dashboard/alerts", "status=418", "user_id=u1", "request_id="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
