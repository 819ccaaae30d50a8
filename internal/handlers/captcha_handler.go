package handlers

import (
	"context"
	"errors"
	"net/http"

	"tawzif_backend/internal/clients/captcha"
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*captcha.Result, error)
	Accepted(r *captcha.Result) bool
}

type CaptchaHandler struct {
	verifier CaptchaVerifier
}

func NewCaptchaHandler(verifier CaptchaVerifier) *CaptchaHandler {
	return &CaptchaHandler{verifier: verifier}
}

// Verify - ответы {success, error}, формат фиксирован фронтендом
func (h *CaptchaHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reCAPTCHA token is required"})
		return
	}

	result, err := h.verifier.Verify(ctx, req.Token, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, captcha.ErrNotConfigured):
			logger.CtxError(ctx, "recaptcha secret key is not configured", "key", "recaptcha.secret_key")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server configuration error"})
		case errors.Is(err, captcha.ErrMissingToken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reCAPTCHA token is required"})
		default:
			logger.CtxWithError(ctx, "recaptcha verification call failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	if !h.verifier.Accepted(result) {
		logger.CtxWarn(ctx, "recaptcha rejected", "error_codes", result.ErrorCodes)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reCAPTCHA verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
