package shared

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrorCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrorCodeMethodNotAllowed    ErrorCode = "METHOD_NOT_ALLOWED"
	ErrorCodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
)

var titleByCode = map[ErrorCode]string{
	ErrorCodeBadRequest:          "Bad request",
	ErrorCodeNotFound:            "Not found",
	ErrorCodeMethodNotAllowed:    "Method not allowed",
	ErrorCodeInternalServerError: "Internal server error",
}

type APIError struct {
	StatusCode int
	Code       ErrorCode
	Msg        string
	Cause      error
	Path       string
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

type errorResponse struct {
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
}

func (e *APIError) response() errorResponse {
	msg := e.Msg
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return errorResponse{
		Error:   titleByCode[e.Code],
		Code:    e.Code,
		Message: msg,
	}
}

func (e *APIError) Send(w http.ResponseWriter, r *http.Request) {
	if e.StatusCode >= 500 {
		log.Error("request failed", "path", e.Path, "status", e.StatusCode, "error", e.Error())
	}
	SendResponse(w, r, e.StatusCode, e.response())
}

func newError(r *http.Request, statusCode int, code ErrorCode, msg string) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Code:       code,
		Msg:        msg,
	}
	if r != nil {
		e.Path = r.URL.Path
	}
	return e
}

func ErrorBadRequest(r *http.Request, msg string) *APIError {
	return newError(r, http.StatusBadRequest, ErrorCodeBadRequest, msg)
}

func ErrorNotFound(r *http.Request, msg string) *APIError {
	return newError(r, http.StatusNotFound, ErrorCodeNotFound, msg)
}

func ErrorMethodNotAllowed(r *http.Request) *APIError {
	return newError(r, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "")
}

func ErrorInternalServerError(r *http.Request, msg string) *APIError {
	return newError(r, http.StatusInternalServerError, ErrorCodeInternalServerError, msg)
}

func SendError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.Send(w, r)
		return
	}
	ErrorInternalServerError(r, err.Error()).WithCause(err).Send(w, r)
}
