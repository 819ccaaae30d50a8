package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tawzif_backend/internal/clients/captcha"

	"github.com/stretchr/testify/assert"
)

func siteverify(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func captchaRouter(client *captcha.Client) http.Handler {
	h := NewCaptchaHandler(client)
	r := newTestRouter("", "")
	r.POST("/api/recaptcha", h.Verify)
	return r
}

func TestCaptcha_MissingToken(t *testing.T) {
	client := captcha.NewClient(captcha.Config{SecretKey: "s", VerifyURL: "http://unused"})
	w := doRequest(captchaRouter(client), http.MethodPost, "/api/recaptcha", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestCaptcha_Unconfigured(t *testing.T) {
	client := captcha.NewClient(captcha.Config{})
	w := doRequest(captchaRouter(client), http.MethodPost, "/api/recaptcha", map[string]string{"token": "t"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestCaptcha_Accepted(t *testing.T) {
	srv := siteverify(t, `{"success":true,"score":0.9}`)
	client := captcha.NewClient(captcha.Config{SecretKey: "s", VerifyURL: srv.URL, MinScore: 0.5})

	w := doRequest(captchaRouter(client), http.MethodPost, "/api/recaptcha", map[string]string{"token": "t"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestCaptcha_Rejected(t *testing.T) {
	for _, reply := range []string{
		`{"success":false,"error-codes":["timeout-or-duplicate"]}`,
		`{"success":true,"score":0.1}`,
	} {
		srv := siteverify(t, reply)
		client := captcha.NewClient(captcha.Config{SecretKey: "s", VerifyURL: srv.URL, MinScore: 0.5})

		w := doRequest(captchaRouter(client), http.MethodPost, "/api/recaptcha", map[string]string{"token": "expired"})
		assert.Equal(t, http.StatusBadRequest, w.Code, reply)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	}
}

func TestCaptcha_UpstreamDown(t *testing.T) {
	srv := siteverify(t, `{}`)
	url := srv.URL
	srv.Close()
	client := captcha.NewClient(captcha.Config{SecretKey: "s", VerifyURL: url})

	w := doRequest(captchaRouter(client), http.MethodPost, "/api/recaptcha", map[string]string{"token": "t"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
