package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
)

const (
	PageList = "list"
	PageForm = "form"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the admin screen templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates once.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, 2)
	for _, page := range []string{PageList, PageForm} {
		tmpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes page with the given status. The page is rendered into a
// buffer first so a template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Row is one line of the banner table.
type Row struct {
	Index    int
	ID       int
	Order    string
	Name     string
	Link     string
	Text     string
	Date     string
	ImageURL template.URL
	Status   string
}

// ListPage drives the table view.
type ListPage struct {
	Rows []Row
}

// NewListPage formats records for display in insertion order.
func NewListPage(records []banners.Banner) ListPage {
	rows := make([]Row, len(records))
	for i, b := range records {
		rows[i] = Row{
			Index:    i + 1,
			ID:       b.IDValue(),
			Order:    fmt.Sprintf("%02d", b.Order),
			Name:     b.Name,
			Link:     b.Link,
			Text:     b.Text1 + b.Text2 + b.Text3,
			Date:     b.Date,
			ImageURL: imageURL(b.Image.URL),
			Status:   string(b.Status),
		}
	}
	return ListPage{Rows: rows}
}

// FormPage drives the form view.
type FormPage struct {
	Data        banners.Banner
	Errors      banners.FieldErrors
	Editing     bool
	SubmitLabel string
	ImageURL    template.URL
	Groups      []enums.BannerGroup
	Statuses    []enums.BannerStatus
}

// NewFormPage builds the form view from a snapshot of the open form.
func NewFormPage(state banners.FormState) FormPage {
	label := "Add"
	if state.Editing {
		label = "Edit"
	}
	errs := state.Errors
	if errs == nil {
		errs = banners.FieldErrors{}
	}
	return FormPage{
		Data:        state.Data,
		Errors:      errs,
		Editing:     state.Editing,
		SubmitLabel: label,
		ImageURL:    imageURL(state.Data.Image.URL),
		Groups:      enums.BannerGroups(),
		Statuses:    []enums.BannerStatus{enums.BannerStatusActive, enums.BannerStatusInactive},
	}
}

// imageURL trusts inline images and http(s) links; anything else renders no
// image at all.
func imageURL(raw string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "data:image/") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "http://") {
		return template.URL(raw)
	}
	return ""
}
