package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

func SafeParseInt(str string, fallbackValue int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return fallbackValue
}

func ZeroPadInt(n int, length int) string {
	s := strconv.Itoa(n)
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}

func HandlePanic(r any, withStack bool) (err error, stack string) {
	if r == nil {
		return nil, ""
	}
	switch v := r.(type) {
	case error:
		err = v
	case string:
		err = errors.New(v)
	default:
		err = fmt.Errorf("%v", v)
	}
	if withStack {
		stack = string(debug.Stack())
	}
	return err, stack
}

func Base64EncodeURL(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

func Base64DecodeURL(value string) (string, error) {
	value = strings.TrimRight(value, "=")
	b, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(value)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
