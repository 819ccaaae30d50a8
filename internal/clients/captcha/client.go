// Package captcha проверяет токены reCAPTCHA через siteverify.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("captcha: secret key is not configured")
	ErrMissingToken  = errors.New("captcha: token is required")
)

// Result - ответ siteverify. Score есть только у v3.
type Result struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

type Config struct {
	SecretKey string
	VerifyURL string
	MinScore  float64
	Timeout   time.Duration
}

type Client struct {
	secret    string
	verifyURL string
	minScore  float64
	http      *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = "https://www.google.com/recaptcha/api/siteverify"
	}
	return &Client{
		secret:    cfg.SecretKey,
		verifyURL: verifyURL,
		minScore:  cfg.MinScore,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.secret != ""
}

// Verify возвращает ответ сервиса. Ошибка - только если сам вызов не удался.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("captcha: call siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("captcha: siteverify returned %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("captcha: decode response: %w", err)
	}
	return &result, nil
}

// Accepted - проверка прошла и (для v3) score не ниже порога
func (c *Client) Accepted(r *Result) bool {
	if r == nil || !r.Success {
		return false
	}
	if r.Score != nil && *r.Score < c.minScore {
		return false
	}
	return true
}
