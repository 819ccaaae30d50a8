package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tawzif_backend/internal/middleware"
	"tawzif_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestBase() *BaseHandler {
	return NewBaseHandler(validator.New())
}

// newTestRouter - роутер с nil БД; withUser имитирует AuthMiddleware
func newTestRouter(userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DBMiddleware(nil))
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("userID", userID)
			c.Set("role", role)
			c.Next()
		})
	}
	return r
}

func doRequest(r http.Handler, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

const (
	jobID     = "0b6f3c2e-1d4a-4e8b-9a51-7f2c3d4e5f60"
	candID    = "5a9d7e21-8c3b-4f6a-b2d4-1e0f9c8b7a65"
	missingID = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"
	viewedID  = "3f1c2b7a-6d5e-4c8f-9a0b-1c2d3e4f5a6b"
)
