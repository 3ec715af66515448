package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeSourceUnavailable, "permit query failed")
	assert.Equal(t, "[SOURCE_UNAVAILABLE] permit query failed", err.Error())

	withDetail := err.WithDetail("endpoint=https://example.supabase.co")
	assert.Equal(t,
		"[SOURCE_UNAVAILABLE] permit query failed: endpoint=https://example.supabase.co",
		withDetail.Error())
	// Original is not mutated.
	assert.Empty(t, err.Detail)
}

func TestWithDetailNilReceiver(t *testing.T) {
	var ae *AppError
	assert.Nil(t, ae.WithDetail("anything"))
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("wraps and unwraps", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := Wrap(cause, CodeSourceUnavailable, "fetch failed")
		require.NotNil(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CodeSourceUnavailable, err.Code)
	})

	t.Run("preserves original code on CodeUnknown", func(t *testing.T) {
		inner := New(CodeSourceUnconfigured, "no credential")
		outer := Wrap(inner, CodeUnknown, "load failed")
		assert.Equal(t, CodeSourceUnconfigured, outer.Code)
	})
}

func TestIsCode(t *testing.T) {
	inner := New(CodeSourceBadPayload, "not JSON")
	outer := fmt.Errorf("wrapped: %w", inner)

	assert.True(t, IsCode(outer, CodeSourceBadPayload))
	assert.False(t, IsCode(outer, CodeNotFound))
	assert.False(t, IsCode(nil, CodeNotFound))
}

func TestIsSourceError(t *testing.T) {
	assert.True(t, IsSourceError(New(CodeSourceUnavailable, "down")))
	assert.True(t, IsSourceError(New(CodeSourceUnconfigured, "no key")))
	assert.True(t, IsSourceError(New(CodeSourceBadPayload, "garbage")))
	assert.False(t, IsSourceError(New(CodeInternal, "boom")))
	assert.False(t, IsSourceError(errors.New("plain")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, CodeNotFound, GetCode(NotFound("permit 42")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{CodeOK, http.StatusOK},
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeSourceUnavailable, http.StatusBadGateway},
		{CodeSourceUnconfigured, http.StatusBadGateway},
		{CodeMigrationFailed, http.StatusInternalServerError},
		{ErrorCode("BOGUS"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.code), "code %s", tc.code)
	}
}
