package apperrors

type ErrorCode string

const (
	// Системные
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
	CodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"
	CodeConfigMissing   ErrorCode = "CONFIG_MISSING"

	// Бизнес-логика
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	CodePostTypeImmutable ErrorCode = "POST_TYPE_IMMUTABLE"
	CodeUnknownTemplate   ErrorCode = "UNKNOWN_TEMPLATE"

	// Аутентификация и авторизация
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)
