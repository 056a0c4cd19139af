package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDirGet(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "v1", "shards"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "v1", "shards", "US.db"), []byte("bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	d := NewDir(root)
	ctx := context.Background()

	data, ok, err := d.Get(ctx, "v1/shards/US.db")
	if err != nil || !ok || string(data) != "bytes" {
		t.Errorf("Get = %q, %v, %v", data, ok, err)
	}

	_, ok, err = d.Get(ctx, "v1/shards/FR.db")
	if err != nil {
		t.Errorf("missing object should not error: %v", err)
	}
	if ok {
		t.Error("missing object should report ok=false")
	}
}

func TestHTTPGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog.json":
			_, _ = w.Write([]byte(`{"links":[]}`))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL + "/")
	ctx := context.Background()

	data, ok, err := h.Get(ctx, "catalog.json")
	if err != nil || !ok || string(data) != `{"links":[]}` {
		t.Errorf("Get = %q, %v, %v", data, ok, err)
	}

	_, ok, err = h.Get(ctx, "missing.json")
	if err != nil {
		t.Errorf("404 should not error: %v", err)
	}
	if ok {
		t.Error("404 should report ok=false")
	}

	_, _, err = h.Get(ctx, "broken")
	if err == nil {
		t.Error("500 should surface as an error")
	}
}
