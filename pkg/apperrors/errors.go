package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

// AppError - основная ошибка приложения, которую понимает HandleError
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`

	// стек есть только у внутренних ошибок (см. InternalError)
	stack string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Stack возвращает стек вызова, если он был снят
func (e *AppError) Stack() string {
	return e.stack
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap оборачивает существующую ошибку в AppError
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON - в ответ попадают только публичные поля, Err и стек остаются в логах
func (e *AppError) MarshalJSON() ([]byte, error) {
	type public AppError
	return json.Marshal((*public)(e))
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// HasCode проверяет, есть ли в цепочке AppError с указанным кодом.
// Фабрики создают новый экземпляр на каждый вызов, поэтому Is тут не подходит.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Общие хелперы ---

// InternalError оборачивает неизвестную системную ошибку и снимает стек
func InternalError(err error) *AppError {
	appErr := Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
	if err != nil {
		appErr.stack = string(goerrors.Wrap(err, 1).Stack())
	}
	return appErr
}

func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
