package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotAccess     = fmt.Errorf("ожидался access-токен")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")

	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrUnauthorized      = fmt.Errorf("неавторизован")
	ErrForbidden         = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("запись уже существует")
)

// ErrorStatusMap сопоставляет сентинельные ошибки с HTTP-статусами.
var ErrorStatusMap = map[error]int{
	ErrInvalidSigningMethod:    http.StatusUnauthorized,
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrTokenExpired:            http.StatusUnauthorized,
	ErrTokenNotYetValid:        http.StatusUnauthorized,
	ErrTokenIsNotAccess:        http.StatusUnauthorized,
	ErrTokenIsNotRefresh:       http.StatusUnauthorized,
	ErrEmptyAuthHeader:         http.StatusUnauthorized,
	ErrInvalidAuthHeader:       http.StatusUnauthorized,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrUserIDNotFoundInContext: http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
	ErrNotFound:                http.StatusNotFound,
	ErrBadRequest:              http.StatusBadRequest,
	ErrConflict:                http.StatusBadRequest,
}

// HttpError — ошибка с кодом для ответа и внутренними деталями для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func NewForbiddenError(message string) *HttpError {
	return &HttpError{Code: http.StatusForbidden, Message: message}
}

func NewTooManyRequestsError(message string) *HttpError {
	return &HttpError{Code: http.StatusTooManyRequests, Message: message}
}
