package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"tawzif_backend/internal/sitemap"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSitemapService struct {
	err     error
	baseURL string
}

func (f *fakeSitemapService) Document(_ context.Context, _ *gorm.DB, name string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`<?xml version="1.0" encoding="UTF-8"?><urlset><url><loc>` + name + `</loc></url></urlset>`), nil
}

func (f *fakeSitemapService) Index() ([]byte, error) {
	return []byte(`<sitemapindex/>`), nil
}

func (f *fakeSitemapService) Robots() string {
	base := f.baseURL
	if base == "" {
		base = "https://tawzif.example"
	}
	return sitemap.Robots(base)
}

func sitemapRouter(svc *fakeSitemapService) http.Handler {
	h := NewSitemapHandler(newTestBase(), svc)
	r := newTestRouter("", "")
	r.GET("/sitemap.xml", h.GetIndex)
	r.GET("/sitemaps/:file", h.GetSitemap)
	r.GET("/robots.txt", h.GetRobots)
	return r
}

func TestSitemapHandler_Index(t *testing.T) {
	w := doRequest(sitemapRouter(&fakeSitemapService{}), http.MethodGet, "/sitemap.xml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
}

func TestSitemapHandler_Category(t *testing.T) {
	w := doRequest(sitemapRouter(&fakeSitemapService{}), http.MethodGet, "/sitemaps/jobs.xml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<loc>jobs</loc>")
}

func TestSitemapHandler_Unknown(t *testing.T) {
	w := doRequest(sitemapRouter(&fakeSitemapService{}), http.MethodGet, "/sitemaps/castings.xml", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSitemapHandler_FetchFailureIs500WithText(t *testing.T) {
	w := doRequest(sitemapRouter(&fakeSitemapService{err: errors.New("db down")}), http.MethodGet, "/sitemaps/workers.xml", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db down")
	assert.NotContains(t, w.Body.String(), "<urlset")
}

func TestSitemapHandler_Robots(t *testing.T) {
	w := doRequest(sitemapRouter(&fakeSitemapService{}), http.MethodGet, "/robots.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User-agent: *\nAllow: /\nSitemap: https://tawzif.example/sitemap.xml", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestSitemapHandler_RobotsKeepsPercentLiteral(t *testing.T) {
	svc := &fakeSitemapService{baseURL: "https://tawzif.example/%d%s"}
	w := doRequest(sitemapRouter(svc), http.MethodGet, "/robots.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User-agent: *\nAllow: /\nSitemap: https://tawzif.example/%d%s/sitemap.xml", w.Body.String())
}
