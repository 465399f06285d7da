package response

import (
	"errors"

	"github.com/natashawa225/sea-catering/pkg/types"
)

type APIResponseCode int

const (
	APIResponseCodeOK              APIResponseCode = 0
	APIResponseCodeBadRequest      APIResponseCode = 40000
	APIResponseCodeUnauthenticated APIResponseCode = 40100
	APIResponseCodeForbidden       APIResponseCode = 40300
	APIResponseCodeNotFound        APIResponseCode = 40400
	APIResponseCodeConflict        APIResponseCode = 40900
	APIResponseCodeError           APIResponseCode = 50000
	APIResponseCodeUnavailable     APIResponseCode = 50300
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:              "ok",
	APIResponseCodeBadRequest:      "bad request",
	APIResponseCodeUnauthenticated: "unauthenticated",
	APIResponseCodeForbidden:       "forbidden",
	APIResponseCodeNotFound:        "not found",
	APIResponseCodeConflict:        "conflict",
	APIResponseCodeError:           "unexpected error",
	APIResponseCodeUnavailable:     "service unavailable",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// CodeFor maps a service error onto an envelope code.
func CodeFor(err error) APIResponseCode {
	switch {
	case err == nil:
		return APIResponseCodeOK
	case errors.Is(err, types.ErrValidation):
		return APIResponseCodeBadRequest
	case errors.Is(err, types.ErrNotFound):
		return APIResponseCodeNotFound
	case errors.Is(err, types.ErrInvalidTransition):
		return APIResponseCodeConflict
	case errors.Is(err, types.ErrPersistenceUnavailable):
		return APIResponseCodeUnavailable
	default:
		return APIResponseCodeError
	}
}

// FromError builds an error envelope; store failures never leak their cause to callers.
func FromError(err error) *APIResponse[any] {
	code := CodeFor(err)
	if code == APIResponseCodeUnavailable {
		return ErrorT[any](code, types.ErrPersistenceUnavailable.Error())
	}
	return ErrorT[any](code, err.Error())
}
