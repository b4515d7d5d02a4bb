package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestVerbsAndGroups(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/products", "products.index", ok)
	api.Put("/products/{id}", "products.update", ok)
	api.Delete("/products/{id}", "products.delete", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/products", http.StatusOK},
		{http.MethodPut, "/api/products/5", http.StatusOK},
		{http.MethodDelete, "/api/products/5", http.StatusOK},
		{http.MethodPost, "/api/products", http.StatusMethodNotAllowed},
	} {
		req, _ := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if res.StatusCode != tc.want {
			t.Errorf("%s %s = %d, want %d", tc.method, tc.path, res.StatusCode, tc.want)
		}
	}
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	if !found || path != "/products/{id}" {
		t.Fatalf("Path() = %q, %v", path, found)
	}

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/products/7" {
		t.Errorf("URL() = %q", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
}

func TestRoutesTable(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	g := r.Group("/admin")
	g.Post("/b", "", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(infos))
	}
	if infos[0].Method != http.MethodGet || infos[0].Path != "/a" || infos[0].Name != "a" {
		t.Errorf("unexpected first route: %+v", infos[0])
	}
	if infos[1].Path != "/admin/b" || infos[1].Name != "" {
		t.Errorf("unexpected second route: %+v", infos[1])
	}
}
