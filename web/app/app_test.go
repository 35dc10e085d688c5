package app_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/lox/pkg/module"
	"github.com/JaimeStill/lox/pkg/web"
	"github.com/JaimeStill/lox/web/app"
)

func TestPages_MetaProducers(t *testing.T) {
	for _, page := range app.Pages("/api") {
		t.Run(page.Route, func(t *testing.T) {
			meta := page.Meta()
			if len(meta) == 0 {
				t.Fatal("producer returned no entries")
			}
			for i, m := range meta {
				if m.Name() == "" || m.Content() == "" {
					t.Errorf("entry %d lacks a key or value: %+v", i, m)
				}
			}
			if err := web.ValidateMeta(meta); err != nil {
				t.Errorf("ValidateMeta() = %v", err)
			}
		})
	}
}

func TestPages_Titles(t *testing.T) {
	want := map[string]string{
		"/{$}":      "This is a test",
		"/register": "This is a test",
		"/welcome":  "Lox",
	}

	pages := app.Pages("/api")
	if len(pages) != len(want) {
		t.Fatalf("len(Pages) = %d, want %d", len(pages), len(want))
	}
	for _, page := range pages {
		meta := page.Meta()
		found := false
		for _, m := range meta {
			if m.IsTitle() && m.Content() == want[page.Route] {
				found = true
			}
		}
		if !found {
			t.Errorf("page %s: no title entry %q", page.Route, want[page.Route])
		}
	}
}

func newRouter(t *testing.T) *module.Router {
	t.Helper()
	m, err := app.NewModule("/app", "/api")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	r := module.NewRouter()
	r.Mount(m)
	return r
}

func TestModule_RendersPages(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		path  string
		title string
		desc  string
		view  string
	}{
		{"/app", "This is a test", "Welcome to React Router!", "registration"},
		{"/app/", "This is a test", "Welcome to React Router!", "registration"},
		{"/app/register", "This is a test", "Welcome to React Router!", "registration"},
		{"/app/welcome", "Lox", "Welcome to Lox!", "welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			body := w.Body.String()

			for _, want := range []string{
				"<title>" + tt.title + "</title>",
				`<meta name="description" content="` + tt.desc + `">`,
				`data-view="` + tt.view + `"`,
			} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			if n := strings.Count(body, "data-view="); n != 1 {
				t.Errorf("rendered %d views, want exactly 1", n)
			}
		})
	}
}

func TestModule_RegistrationPostsToAPI(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/register", nil))

	if !strings.Contains(w.Body.String(), `action="/api/auth/register"`) {
		t.Error("registration form does not target the API")
	}
}

func TestModule_NotFound(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), `data-view="not-found"`) {
		t.Error("404 page not rendered")
	}
}

func TestModule_PublicFiles(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/app/app.css", "/app/app.js", "/app/favicon.svg"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, w.Code)
		}
	}
}
