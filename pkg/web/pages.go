// Package web provides infrastructure for serving web pages with Go templates.
// It supports pre-parsed templates for zero per-request overhead and
// declarative page definitions carrying their document head metadata.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ContentTemplate is the template every view defines. Layouts execute it
// exactly once as the body of the page.
const ContentTemplate = "content"

// PageDef defines a page with its route, view template, metadata producer,
// and bundle name. Data is passed to the view unchanged.
type PageDef struct {
	Route    string
	Template string
	Meta     MetaFunc
	Bundle   string
	Data     any
}

// PageData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type PageData struct {
	Title    string
	Meta     []Meta
	Bundle   string
	BasePath string
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
// Templates are parsed once at startup, avoiding per-request overhead.
type TemplateSet struct {
	pages    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses layout templates and clones them for each page.
// Every page must define ContentTemplate and produce valid metadata;
// otherwise construction fails and nothing is served.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, pages []PageDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	views := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		if err := validatePage(p); err != nil {
			return nil, err
		}
		if _, ok := views[p.Template]; ok {
			continue
		}

		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		if _, err := t.ParseFS(viewSub, p.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", p.Template, err)
		}
		if t.Lookup(ContentTemplate) == nil {
			return nil, fmt.Errorf("template %s: missing %q definition", p.Template, ContentTemplate)
		}
		views[p.Template] = t
	}

	return &TemplateSet{
		pages:    views,
		basePath: basePath,
	}, nil
}

func validatePage(p PageDef) error {
	if p.Template == "" {
		return fmt.Errorf("page %q: template required", p.Route)
	}
	if p.Meta == nil {
		return fmt.Errorf("page %s: %w: no metadata producer", p.Template, ErrInvalidMeta)
	}
	if err := ValidateMeta(p.Meta()); err != nil {
		return fmt.Errorf("page %s: %w", p.Template, err)
	}
	return nil
}

// BasePath returns the path the owning module is mounted under.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Data builds the PageData for page.
func (ts *TemplateSet) Data(page PageDef) PageData {
	meta := page.Meta()
	return PageData{
		Title:    TitleOf(meta),
		Meta:     meta,
		Bundle:   page.Bundle,
		BasePath: ts.basePath,
		Data:     page.Data,
	}
}

// ErrorHandler returns an HTTP handler that renders page with the given
// status code.
func (ts *TemplateSet) ErrorHandler(layout string, page PageDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, page.Template, ts.Data(page)); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler returns an HTTP handler that renders page.
func (ts *TemplateSet) PageHandler(layout string, page PageDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, http.StatusOK, layout, page.Template, ts.Data(page)); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Render executes the named layout with the given page data. Output is
// buffered so a failed execution writes nothing and the caller can respond
// with an error instead.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layoutName, viewPath string, data PageData) error {
	t, ok := ts.pages[viewPath]
	if !ok {
		return fmt.Errorf("template not found: %s", viewPath)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("execute %s: %w", viewPath, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
