package visitor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "visitor_id"
	CookieMaxAge = 365 * 24 * time.Hour
)

// CookieStore хранит идентификатор в cookie visitor_id.
// HttpOnly выключен: фронтенд читает значение сам.
type CookieStore struct {
	c      *gin.Context
	domain string
	secure bool
}

func NewCookieStore(c *gin.Context, domain string, secure bool) *CookieStore {
	return &CookieStore{c: c, domain: domain, secure: secure}
}

func (s *CookieStore) Get() (string, bool) {
	value, err := s.c.Cookie(CookieName)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *CookieStore) Set(id string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(CookieName, id, int(CookieMaxAge.Seconds()), "/", s.domain, s.secure, false)
	return nil
}
