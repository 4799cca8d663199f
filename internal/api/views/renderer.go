// Package views renders the server-side HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageHome     = "home"
	PageLogin    = "login"
	PageRegister = "register"
	PageError    = "error"
)

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageHome, PageLogin, PageRegister, PageError} {
		t, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the embedded stylesheet tree, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// DatetimeLocal is the layout of <input type="datetime-local"> values.
const DatetimeLocal = "2006-01-02T15:04"

var funcs = template.FuncMap{
	"datetimeLocal": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(DatetimeLocal)
	},
	"humanTime": func(t time.Time) string {
		if t.IsZero() {
			return "TBD"
		}
		return t.UTC().Format("Jan 2, 2006 3:04 PM")
	},
	"tooltip": func(name string) string {
		switch name {
		case "create":
			return TooltipCreateDenied
		case "edit":
			return TooltipEditDenied
		case "public":
			return TooltipMakePublic
		}
		return ""
	},
}
