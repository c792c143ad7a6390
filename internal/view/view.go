// Package view renders the console's HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile  = "templates/layout.html"
	partialGlob = "templates/_*.html"
	rootName    = "base"
)

// Page is the data every page template receives.
type Page struct {
	Title         string
	Active        string
	User          *inventory.User
	CSRFToken     string
	Notifications []notify.Notification
	Data          any
}

// Engine holds one parsed template set per page. It implements gin's
// render.HTMLRender.
type Engine struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout and partials.
func New() (*Engine, error) {
	pageFiles, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	partials, err := fs.Glob(templatesFS, partialGlob)
	if err != nil {
		return nil, err
	}

	e := &Engine{pages: make(map[string]*template.Template)}
	for _, file := range pageFiles {
		base := path.Base(file)
		if file == layoutFile || strings.HasPrefix(base, "_") {
			continue
		}
		name := strings.TrimSuffix(base, ".html")
		files := append([]string{layoutFile}, partials...)
		files = append(files, file)

		t, err := template.New(name).Funcs(Funcs()).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		e.pages[name] = t
	}
	return e, nil
}

// Instance implements render.HTMLRender.
func (e *Engine) Instance(name string, data any) render.Render {
	t, ok := e.pages[name]
	if !ok {
		t = template.Must(template.New("missing").Parse(`{{define "base"}}unknown page {{.}}{{end}}`))
		data = name
	}
	return render.HTML{Template: t, Name: rootName, Data: data}
}

// Has reports whether a page template exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.pages[name]
	return ok
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":       Money,
		"statusClass": StatusClass,
		"date":        Date,
		"inc":         func(i int) int { return i + 1 },
		"statuses":    inventory.OrderStatuses,
		"levelClass":  LevelClass,
	}
}

// Money formats an amount with two decimals, e.g. "$12.50".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// StatusClass is the badge style for an order status.
func StatusClass(s inventory.OrderStatus) string {
	switch s {
	case inventory.OrderStatusPending:
		return "badge-warning"
	case inventory.OrderStatusProcessing:
		return "badge-info"
	case inventory.OrderStatusShipped:
		return "badge-primary"
	case inventory.OrderStatusDelivered:
		return "badge-success"
	case inventory.OrderStatusCancelled:
		return "badge-danger"
	default:
		return "badge-secondary"
	}
}

// LevelClass is the alert style for a notification.
func LevelClass(l notify.Level) string {
	switch l {
	case notify.LevelSuccess:
		return "alert-success"
	case notify.LevelError:
		return "alert-danger"
	default:
		return "alert-info"
	}
}

// Date formats an order date. Zero values render as a dash.
func Date(v any) string {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case inventory.Timestamp:
		t = x.Time
	case *inventory.Timestamp:
		if x != nil {
			t = x.Time
		}
	}
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006 15:04")
}
