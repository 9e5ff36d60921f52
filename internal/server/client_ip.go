package server

import (
	"net"
	"net/http"
	"strings"
)

type ipHeader struct {
	name string
	list bool
}

// checked in order, first public address wins
var clientIPHeaders = []ipHeader{
	{name: "Cf-Connecting-Ip"},
	{name: "True-Client-Ip"},
	{name: "X-Real-Ip"},
	{name: "X-Client-Ip"},
	{name: "Fastly-Client-Ip"},
	{name: "X-Forwarded-For", list: true},
	{name: "Forwarded", list: true},
}

func isPublicIP(value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsUnspecified()
}

func parseForwardedValue(value string) string {
	value = strings.TrimSpace(value)
	for part := range strings.SplitSeq(value, ";") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(strings.ToLower(part)), "for="); ok {
			value = strings.Trim(v, `"[]`)
			break
		}
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		return host
	}
	return value
}

func GetClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		value := r.Header.Get(header.name)
		if value == "" {
			continue
		}
		if !header.list {
			if isPublicIP(value) {
				return value
			}
			continue
		}
		for item := range strings.SplitSeq(value, ",") {
			if ip := parseForwardedValue(item); isPublicIP(ip) {
				return ip
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
