package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler рендерит ошибку в JSON.
// В Debug-режиме текст неизвестных ошибок уходит клиенту как есть.
type GinErrorHandler struct {
	Debug bool
}

var defaultHandler = &GinErrorHandler{}

// SetDebug переключает режим глобального обработчика (вызывается из app.Run)
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if h.Debug && err != nil {
			appErr.Details = err.Error()
		}
	}

	if appErr.HTTPCode >= 500 {
		attrs := []any{
			"code", appErr.Code,
			"domain", appErr.Domain,
			"path", c.Request.URL.Path,
		}
		if appErr.Err != nil {
			attrs = append(attrs, "error", appErr.Err.Error())
		}
		if stack := appErr.Stack(); stack != "" && h.Debug {
			attrs = append(attrs, "stack", stack)
		}
		slog.Error("server error", attrs...)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError пытается достать *AppError из цепочки
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
