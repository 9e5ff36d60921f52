package torbox

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

type ErrorKind string

const (
	ErrorKindAuth        ErrorKind = "auth"
	ErrorKindEntitlement ErrorKind = "entitlement"
	ErrorKindUpstream    ErrorKind = "upstream"
)

type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	var str strings.Builder
	str.WriteString("torbox: ")
	str.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		str.WriteString(" (" + strconv.Itoa(e.StatusCode) + ")")
	}
	if e.Cause != nil {
		str.WriteString(": " + e.Cause.Error())
	} else if e.Body != "" {
		body := e.Body
		if len(body) > 200 {
			body = body[:200]
		}
		str.WriteString(": " + body)
	}
	return str.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

var entitlementMarkers = []string{"plan", "subscription", "upgrade", "paid"}

func classifyStatus(statusCode int, body string) ErrorKind {
	switch statusCode {
	case http.StatusPaymentRequired:
		return ErrorKindEntitlement
	case http.StatusForbidden:
		lower := strings.ToLower(body)
		for _, marker := range entitlementMarkers {
			if strings.Contains(lower, marker) {
				return ErrorKindEntitlement
			}
		}
		return ErrorKindAuth
	case http.StatusUnauthorized:
		return ErrorKindAuth
	}
	return ErrorKindUpstream
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsAuthError includes entitlement failures.
func IsAuthError(err error) bool {
	kind := kindOf(err)
	return kind == ErrorKindAuth || kind == ErrorKindEntitlement
}

func IsEntitlementError(err error) bool {
	return kindOf(err) == ErrorKindEntitlement
}
