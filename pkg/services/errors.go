package services

import (
	"errors"
	"net/http"

	"minedicas/pkg/validation"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAuth         = "AUTH_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeCaptcha      = "CAPTCHA_ERROR"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"
)

const (
	MsgLoginFailed   = "Nome de usuário ou senha incorretos."
	MsgLoginFormat   = "Invalid credentials format"
	MsgNoToken       = "No token provided"
	MsgInvalidToken  = "Invalid token"
	MsgRateLimited   = "Você está postando muito rápido. Por favor, aguarde um momento."
	MsgCaptchaFailed = "Verificação de segurança falhou. Tente novamente."
	MsgInvalidData   = "Dados inválidos"
	MsgInvalidJSON   = "JSON inválido"
)

// ServiceError é o erro de domínio que a camada HTTP traduz para o envelope de falha.
type ServiceError struct {
	Code    string
	Message string
	Status  int
	Details interface{}
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

func NewServiceError(code, message string, status int) *ServiceError {
	return &ServiceError{Code: code, Message: message, Status: status}
}

func ErrValidation(message string, details interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, Status: http.StatusBadRequest, Details: details}
}

func ErrNotFound(message string) *ServiceError {
	return NewServiceError(CodeNotFound, message, http.StatusNotFound)
}

func ErrUnauthorized(message string) *ServiceError {
	return NewServiceError(CodeUnauthorized, message, http.StatusUnauthorized)
}

func ErrCaptcha() *ServiceError {
	return NewServiceError(CodeCaptcha, MsgCaptchaFailed, http.StatusBadRequest)
}

func ErrRateLimited() *ServiceError {
	return NewServiceError(CodeRateLimit, MsgRateLimited, http.StatusTooManyRequests)
}

func errLoginFailed() *ServiceError {
	return NewServiceError(CodeAuth, MsgLoginFailed, http.StatusUnauthorized)
}

// fromValidation converte um *validation.Error em VALIDATION_ERROR com a lista de campos.
func fromValidation(err error, message string) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return ErrValidation(message, verr.Fields)
	}
	return err
}

// AsServiceError extrai o ServiceError da cadeia, se houver.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
