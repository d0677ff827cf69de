package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	if _, err := New("not a url", time.Second); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
	if _, err := New("/relative", time.Second); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

func TestGetJSON(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		if r.URL.Path != "/rest/v1/pets" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"p1"}]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/rest/v1/", time.Second, WithHeader("apikey", "secret"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out []struct {
		ID string `json:"id"`
	}
	q := url.Values{}
	q.Set("pet_id", "in.(a,b)")
	if err := c.GetJSON(context.Background(), "pets", q, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Fatalf("unexpected body %#v", out)
	}
	if gotKey != "secret" {
		t.Fatalf("expected apikey header, got %q", gotKey)
	}
	if gotQuery != "pet_id=in.(a,b)" {
		t.Fatalf("expected literal PostgREST operator, got %q", gotQuery)
	}
}

func TestGetJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	err := c.GetJSON(context.Background(), "/x", nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadGateway || he.Body != "boom" {
		t.Fatalf("expected HTTPError 502, got %v", err)
	}
}
