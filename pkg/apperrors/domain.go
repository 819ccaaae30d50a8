package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - 404 для ошибок репозитория вида gorm.ErrRecordNotFound
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrDataUnavailable - хранилище не ответило. Страницы списков
// превращают её в пустой результат, остальные отдают 503.
func ErrDataUnavailable(err error) *AppError {
	return Wrap(err, CodeDataUnavailable, "storage", "Data is temporarily unavailable", http.StatusServiceUnavailable)
}

// ErrConfigMissing - не задан обязательный параметр (ключ API и т.п.)
func ErrConfigMissing(domain, key string) *AppError {
	return New(CodeConfigMissing, domain, key+" is not configured", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or malformed token", http.StatusUnauthorized)

var ErrTokenExpired = New(CodeTokenExpired, "auth", "Token has expired", http.StatusUnauthorized)

// --- Listings ---

var ErrListingNotFound = New(CodeNotFound, "listing", "Listing not found", http.StatusNotFound)

var ErrNotListingOwner = New(CodeForbidden, "listing", "Only the owner can modify this listing", http.StatusForbidden)

var ErrPostTypeImmutable = New(CodePostTypeImmutable, "listing", "post_type cannot be changed after creation", http.StatusBadRequest)

// --- Competitions / Immigration ---

var ErrCompetitionNotFound = New(CodeNotFound, "competition", "Competition not found", http.StatusNotFound)

var ErrImmigrationPostNotFound = New(CodeNotFound, "immigration", "Immigration post not found", http.StatusNotFound)

// --- Content ---

var ErrArticleNotFound = New(CodeNotFound, "content", "Article not found", http.StatusNotFound)

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found", http.StatusNotFound)

// --- CV ---

var ErrUnknownTemplate = New(CodeUnknownTemplate, "cv", "Unknown CV template", http.StatusBadRequest)
