package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_Get(t *testing.T) {
	r := New()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", w.Body.String(), "ok")
	}
}

func TestRouter_MethodMatters(t *testing.T) {
	r := New()
	r.Post("/cart/clear", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/clear", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestRouter_PathValues(t *testing.T) {
	r := New()
	r.Get("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(req.PathValue("id")))
	})

	req := httptest.NewRequest(http.MethodGet, "/products/abc-123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "abc-123" {
		t.Errorf("path value = %q, want %q", w.Body.String(), "abc-123")
	}
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(record("global"))
	r.Get("/x", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	}, record("route"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"global", "route", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRouter_GroupInheritsMiddleware(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(record("global"))
	group := r.Group(record("group"))
	group.Get("/y", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	})

	// Routes registered on the group are served by the parent router.
	req := httptest.NewRequest(http.MethodGet, "/y", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"global", "group", "handler"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
