package service

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
)

type Resource string

const (
	ResourceTask Resource = "task"
	ResourceUser Resource = "user"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

// NewNotFound сообщение совпадает с тем, что видит клиент ("Task not found")
func NewNotFound(resource Resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: notFoundMessage(resource),
		Details: map[string]any{
			"resource": string(resource),
			"id":       id,
		},
	}
}

func notFoundMessage(resource Resource) string {
	switch resource {
	case ResourceTask:
		return "Task not found"
	case ResourceUser:
		return "User not found"
	}
	return fmt.Sprintf("%s not found", resource)
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Invalid value for '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewMissingFields ошибка для обязательных полей, текст как у исходного API
func NewMissingFields(fields ...string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: "Required all fields",
		Details: map[string]any{
			"fields": fields,
		},
	}
}

func IsCode(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}
