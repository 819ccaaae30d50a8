// Package content - справочные данные, вшитые в бинарник: категории и статьи.
package content

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v2"
)

//go:embed data/*.yaml
var files embed.FS

type Category struct {
	ID     string `yaml:"id" json:"id"`
	NameAr string `yaml:"name_ar" json:"name_ar"`
	NameEn string `yaml:"name_en" json:"name_en"`
	Icon   string `yaml:"icon" json:"icon"`
}

type Article struct {
	Slug    string `yaml:"slug" json:"slug"`
	Title   string `yaml:"title" json:"title"`
	Author  string `yaml:"author" json:"author"`
	Date    string `yaml:"date" json:"date"`
	Summary string `yaml:"summary" json:"summary"`
	Body    string `yaml:"body" json:"body,omitempty"`
}

// PublishedAt разбирает Date (YYYY-MM-DD). Нулевое время - если дата битая.
func (a Article) PublishedAt() time.Time {
	t, err := time.Parse("2006-01-02", a.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Library struct {
	categories []Category
	articles   []Article
	bySlug     map[string]int
}

// Load читает вшитые YAML-файлы. Статьи сортируются от новых к старым.
func Load() (*Library, error) {
	lib := &Library{bySlug: make(map[string]int)}

	if err := decode("data/categories.yaml", &lib.categories); err != nil {
		return nil, err
	}
	if err := decode("data/articles.yaml", &lib.articles); err != nil {
		return nil, err
	}

	sort.SliceStable(lib.articles, func(i, j int) bool {
		return lib.articles[i].Date > lib.articles[j].Date
	})

	for i, a := range lib.articles {
		if _, dup := lib.bySlug[a.Slug]; dup {
			return nil, fmt.Errorf("duplicate article slug %q", a.Slug)
		}
		lib.bySlug[a.Slug] = i
	}
	return lib, nil
}

func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic(err)
	}
	return lib
}

func decode(path string, out interface{}) error {
	raw, err := files.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (l *Library) Categories() []Category {
	out := make([]Category, len(l.categories))
	copy(out, l.categories)
	return out
}

func (l *Library) Category(id string) (Category, bool) {
	for _, c := range l.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Articles - список без тела статьи
func (l *Library) Articles() []Article {
	out := make([]Article, len(l.articles))
	for i, a := range l.articles {
		a.Body = ""
		out[i] = a
	}
	return out
}

func (l *Library) Article(slug string) (Article, bool) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Article{}, false
	}
	return l.articles[i], true
}
