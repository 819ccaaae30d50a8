package cv

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"tawzif_backend/pkg/apperrors"
)

//go:embed templates/*.html styles/*.css
var files embed.FS

// Assembler превращает данные резюме в самостоятельный HTML-документ.
// Шаблоны разбираются один раз при создании; Render безопасен для конкурентного вызова.
type Assembler struct {
	layouts     map[string]*template.Template
	stylesheets map[string]template.CSS
}

type document struct {
	TemplateID string
	Lang       string
	Dir        string
	Stylesheet template.CSS
	Labels     Labels
	Data       *Data
}

var funcs = template.FuncMap{
	"period":   period,
	"initials": initials,
	"lines":    lines,
}

func NewAssembler() (*Assembler, error) {
	base, err := template.New("cv").Funcs(funcs).ParseFS(files, "templates/base.html", "templates/sections.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	a := &Assembler{
		layouts:     make(map[string]*template.Template),
		stylesheets: make(map[string]template.CSS),
	}

	for _, t := range registry {
		if _, ok := a.layouts[t.layout]; !ok {
			clone, err := base.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := clone.ParseFS(files, "templates/layout_"+t.layout+".html"); err != nil {
				return nil, fmt.Errorf("parse layout %s: %w", t.layout, err)
			}
			a.layouts[t.layout] = clone
		}

		css, err := files.ReadFile("styles/" + t.stylesheet)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet %s: %w", t.stylesheet, err)
		}
		// стили наши собственные, экранировать их не нужно
		a.stylesheets[t.ID] = template.CSS(css)
	}

	return a, nil
}

func MustAssembler() *Assembler {
	a, err := NewAssembler()
	if err != nil {
		panic(err)
	}
	return a
}

// Render собирает HTML. Пользовательские значения экранируются html/template.
func (a *Assembler) Render(data *Data, templateID string) (string, error) {
	tpl, ok := LookupTemplate(templateID)
	if !ok {
		return "", apperrors.ErrUnknownTemplate
	}
	if data == nil {
		return "", apperrors.NewBadRequestError("CV data is required")
	}

	doc := document{
		TemplateID: tpl.ID,
		Lang:       tpl.Lang,
		Dir:        tpl.Dir,
		Stylesheet: a.stylesheets[tpl.ID],
		Labels:     labelsByLang[tpl.Lang],
		Data:       data,
	}

	var buf bytes.Buffer
	if err := a.layouts[tpl.layout].ExecuteTemplate(&buf, "document", doc); err != nil {
		return "", apperrors.InternalError(fmt.Errorf("render cv template %s: %w", tpl.ID, err))
	}
	return buf.String(), nil
}

func period(start, end string, current bool, present string) string {
	if current {
		end = present
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
