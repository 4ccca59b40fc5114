// Package views renders the server-side HTML pages from embedded templates
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names
const (
	PageIndex    = "index"
	PageDetail   = "detail"
	PageNotFound = "not_found"
)

// PageData is the binding shared by every page
type PageData struct {
	Title       string
	LoggedIn    bool
	IsAdmin     bool
	DisplayName string
	VendorID    string
	Flashes     []services.Flash
	TodayJalali string
	Campaigns   []dto.CampaignView
	Campaign    *dto.CampaignView
}

// Engine implements fiber.Views over the embedded templates
type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New creates an engine; templates are parsed on Load
func New() *Engine {
	return &Engine{}
}

var funcs = template.FuncMap{
	"jalali": utils.ToDisplay,
	"phaseLabel": func(phase string) string {
		switch phase {
		case string(models.CampaignPhaseUpcoming):
			return "آینده"
		case string(models.CampaignPhaseActive):
			return "فعال"
		default:
			return "پایان‌یافته"
		}
	},
}

// Load parses the layout together with each page
func (e *Engine) Load() error {
	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{PageIndex, PageDetail, PageNotFound} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render executes the named page inside the layout
func (e *Engine) Render(out io.Writer, name string, binding any, _ ...string) error {
	e.mu.RLock()
	t, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(out, "layout.html", binding)
}
