package errors

import (
	"fmt"
)

type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "недействительный токен авторизации"
}

func (e *ErrUnauthorized) Is(target error) bool {
	_, ok := target.(*ErrUnauthorized)
	return ok
}

type ErrSourceUnavailable struct {
	Source string
	Cause  error
}

func (e *ErrSourceUnavailable) Error() string {
	return fmt.Sprintf("источник контента '%s' недоступен: %v", e.Source, e.Cause)
}

func (e *ErrSourceUnavailable) Unwrap() error {
	return e.Cause
}

func (e *ErrSourceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrSourceUnavailable)
	return ok
}

type ErrMissingRequiredField struct {
	FieldName string
}

func (e *ErrMissingRequiredField) Error() string {
	return fmt.Sprintf("отсутствует обязательное поле: %s", e.FieldName)
}

func (e *ErrMissingRequiredField) Is(target error) bool {
	_, ok := target.(*ErrMissingRequiredField)
	return ok
}

type ErrInvalidSubscription struct {
	Message string
}

func (e *ErrInvalidSubscription) Error() string {
	return "некорректная подписка: " + e.Message
}

type ErrUnknownPushTransport struct {
	Transport string
}

func (e *ErrUnknownPushTransport) Error() string {
	return fmt.Sprintf("неизвестный транспорт push-уведомлений: %s", e.Transport)
}

type ErrInternalServer struct {
	Message string
}

func (e *ErrInternalServer) Error() string {
	return "внутренняя ошибка сервера: " + e.Message
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
