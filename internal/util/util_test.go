package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroPadInt(t *testing.T) {
	for _, tc := range []struct {
		n        int
		length   int
		expected string
	}{
		{5, 2, "05"},
		{12, 2, "12"},
		{123, 2, "123"},
		{0, 2, "00"},
	} {
		assert.Equal(t, tc.expected, ZeroPadInt(tc.n, tc.length))
	}
}

func TestSafeParseInt(t *testing.T) {
	assert.Equal(t, 24, SafeParseInt("24", -1))
	assert.Equal(t, 7, SafeParseInt(" 7 ", -1))
	assert.Equal(t, -1, SafeParseInt("x", -1))
}

func TestHandlePanic(t *testing.T) {
	err, _ := HandlePanic(nil, false)
	assert.NoError(t, err)

	err, _ = HandlePanic("boom", false)
	assert.EqualError(t, err, "boom")

	cause := errors.New("cause")
	err, stack := HandlePanic(cause, true)
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, stack)
}

func TestBase64URL(t *testing.T) {
	encoded := Base64EncodeURL(`{"torbox_api_key":"abc"}`)
	decoded, err := Base64DecodeURL(encoded)
	assert.NoError(t, err)
	assert.Equal(t, `{"torbox_api_key":"abc"}`, decoded)

	_, err = Base64DecodeURL("%%%")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	s := NewSet[string]()
	assert.False(t, s.Has("a"))
	s.Add("a")
	s.Add("a")
	assert.True(t, s.Has("a"))
	assert.Equal(t, 1, s.Len())
}

func TestFoldASCII(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected string
	}{
		{"São Paulo", "Sao Paulo"},
		{"Türkiye", "Turkiye"},
		{"Montréal", "Montreal"},
		{"Imola", "Imola"},
	} {
		assert.Equal(t, tc.expected, FoldASCII(tc.input))
	}
	assert.Equal(t, "sao paulo", NormalizeName("  São   Paulo "))
}
