// Package web holds the embedded HTML templates and browser assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/cppla/threadbbs/utils"
)

// MaxReplyDepth is the deepest level at which the page offers a reply form.
const MaxReplyDepth = 5

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Pages rendered by the board.
var pageNames = []string{"home", "post", "submit", "login", "register", "error"}

// Templates maps a page name to its parsed layout+page template.
type Templates map[string]*template.Template

// Frame pairs a comment node with its nesting depth while rendering.
type Frame struct {
	Node  interface{}
	Depth int
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"sanitize": func(s string) template.HTML { return template.HTML(utils.Sanitize(s)) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"frame":    func(node interface{}, depth int) Frame { return Frame{Node: node, Depth: depth} },
		"add":      func(a, b int) int { return a + b },
		"canReply": func(depth int) bool { return depth < MaxReplyDepth },
	}
}

// LoadTemplates parses every page together with the shared layout.
func LoadTemplates() (Templates, error) {
	layout, err := templateFS.ReadFile("templates/layout.html")
	if err != nil {
		return nil, err
	}
	out := make(Templates, len(pageNames))
	for _, name := range pageNames {
		page, err := templateFS.ReadFile("templates/" + name + ".html")
		if err != nil {
			return nil, err
		}
		t, err := template.New("layout").Funcs(funcs()).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if t, err = t.Parse(string(page)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// Static serves the embedded browser assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
