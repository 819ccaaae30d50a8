// Package pdf - клиент внешнего сервиса рендеринга HTML в PDF.
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("pdf: render service api key is not configured")

// RenderServiceError - сервис ответил не-2xx. Status пробрасывается клиенту как есть.
type RenderServiceError struct {
	Status  int
	Message string
}

func (e *RenderServiceError) Error() string {
	return fmt.Sprintf("pdf: render service returned %d: %s", e.Status, e.Message)
}

type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type renderRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
	Format   string `json:"format"`
	UsePrint bool   `json:"use_print"`
}

// Render отправляет разметку в сервис и возвращает байты PDF. Повторов нет.
func (c *Client) Render(ctx context.Context, html, fileName string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(renderRequest{Source: html, Filename: fileName, Format: "A4", UsePrint: true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pdf: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf: call render service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &RenderServiceError{Status: resp.StatusCode, Message: upstreamMessage(raw, resp.Status)}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pdf: read response: %w", err)
	}
	return pdf, nil
}

// upstreamMessage достаёт текст ошибки из JSON ({"error": ...} или {"message": ...}),
// иначе отдаёт тело как есть
func upstreamMessage(raw []byte, fallback string) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		var s string
		if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &s) == nil && s != "" {
			return s
		}
		if len(payload.Error) > 0 && string(payload.Error) != "null" {
			return string(payload.Error)
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}
