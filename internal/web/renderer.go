package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/socialchef/sous/internal/services/recipe"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a Page into HTML. It is built once and is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		tmpl: tmpl,
		// Raw HTML in model output is dropped: goldmark only passes it through with html.WithUnsafe.
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// Render writes the full page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// ResultView builds the view for res, rendering the model text as Markdown.
func (r *Renderer) ResultView(res recipe.Result) (*ResultView, error) {
	view := NewResultView(res)
	if view.Markdown == "" {
		return &view, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(view.Markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	view.Body = template.HTML(buf.String())
	return &view, nil
}
