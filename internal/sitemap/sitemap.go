// Package sitemap строит XML-карты сайта (sitemaps.org 0.9) и robots.txt.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

const (
	Home         = "home"
	Static       = "static"
	Jobs         = "jobs"
	Workers      = "workers"
	Competitions = "competitions"
	Immigration  = "immigration"
	Articles     = "articles"
)

// Names - категории в порядке индекса
var Names = []string{Home, Static, Jobs, Workers, Competitions, Immigration, Articles}

type Weight struct {
	ChangeFreq string
	Priority   float64
}

var Weights = map[string]Weight{
	Home:         {ChangeFreq: "daily", Priority: 1.0},
	Static:       {ChangeFreq: "weekly", Priority: 0.8},
	Jobs:         {ChangeFreq: "daily", Priority: 0.9},
	Workers:      {ChangeFreq: "daily", Priority: 0.8},
	Competitions: {ChangeFreq: "daily", Priority: 0.8},
	Immigration:  {ChangeFreq: "weekly", Priority: 0.7},
	Articles:     {ChangeFreq: "monthly", Priority: 0.6},
}

// StaticPages - страницы без данных из БД
var StaticPages = []string{
	"/about", "/contact", "/privacy", "/terms", "/cv-builder",
	"/jobs", "/workers", "/competitions", "/immigration", "/articles",
}

// Entry - одна страница. LastMod нулевой, если дата неизвестна.
type Entry struct {
	Path    string
	LastMod time.Time
}

// FetchFunc отдаёт все записи категории без фильтров
type FetchFunc func(ctx context.Context) ([]Entry, error)

func IsKnown(name string) bool {
	_, ok := Weights[name]
	return ok
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Xmlns    string         `xml:"xmlns,attr"`
	Sitemaps []indexSitemap `xml:"sitemap"`
}

type indexSitemap struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type Generator struct {
	baseURL string
	now     func() time.Time
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// Generate выгружает записи категории и собирает urlset.
// Ошибка выборки возвращается как есть: пустую карту не отдаём.
func (g *Generator) Generate(ctx context.Context, name string, fetch FetchFunc) ([]byte, error) {
	weight, ok := Weights[name]
	if !ok {
		return nil, fmt.Errorf("unknown sitemap %q", name)
	}

	entries, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: fetch entries: %w", name, err)
	}

	today := g.today()
	set := urlSet{Xmlns: Namespace, URLs: make([]url, 0, len(entries))}
	for _, e := range entries {
		lastMod := today
		if !e.LastMod.IsZero() {
			lastMod = e.LastMod.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, url{
			Loc:        g.Loc(e.Path),
			LastMod:    lastMod,
			ChangeFreq: weight.ChangeFreq,
			Priority:   strconv.FormatFloat(weight.Priority, 'f', 1, 64),
		})
	}
	return encode(set)
}

// Index перечисляет все категорийные карты
func (g *Generator) Index() ([]byte, error) {
	today := g.today()
	index := sitemapIndex{Xmlns: Namespace}
	for _, name := range Names {
		index.Sitemaps = append(index.Sitemaps, indexSitemap{
			Loc:     g.Loc("/sitemaps/" + name + ".xml"),
			LastMod: today,
		})
	}
	return encode(index)
}

// Loc - абсолютный адрес страницы
func (g *Generator) Loc(path string) string {
	return g.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (g *Generator) today() string {
	return g.now().UTC().Format(time.DateOnly)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots - тело robots.txt
func Robots(baseURL string) string {
	return "User-agent: *\nAllow: /\nSitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml"
}
