package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates
var templateFS embed.FS

var pageNames = []string{
	"posts/index.html",
	"posts/group_list.html",
	"posts/profile.html",
	"posts/post_detail.html",
	"posts/create_post.html",
	"posts/follow.html",
	"users/signup.html",
	"users/login.html",
	"users/logged_out.html",
	"about/author.html",
	"about/tech.html",
	"core/404.html",
	"core/500.html",
}

// renderer holds one template set per page: the base layout, the shared includes and the page
// itself, which defines the "title" and "content" blocks.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(funcs template.FuncMap) (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/includes/*.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) execute(buf *bytes.Buffer, name string, data interface{}) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(buf, "base", data)
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url":   s.reverse,
		"media": s.media.URL,
	}
}

// render writes the page only after it executed completely, so a template error never leaves
// half a page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.pages.execute(&buf, name, data); err != nil {
		log.Printf("Error rendering %s for %s: %v\n", name, r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing %s: %v\n", name, err)
	}
}
