package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame/internal/web/templates/layout"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, FlashSuccess, "Welcome, Alice; you have 60 seconds!")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	var got *layout.FlashMessage
	next := httptest.NewRecorder()
	Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetFlash(r.Context())
	})).ServeHTTP(next, req)

	require.NotNil(t, got)
	assert.Equal(t, FlashSuccess, got.Type)
	assert.Equal(t, "Welcome, Alice; you have 60 seconds!", got.Message)

	cleared := next.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlashAbsent(t *testing.T) {
	var got *layout.FlashMessage
	Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetFlash(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, got)
}

func TestParseFlash(t *testing.T) {
	tests := []struct {
		value string
		want  layout.FlashMessage
	}{
		{"error:Game not found", layout.FlashMessage{Type: FlashError, Message: "Game not found"}},
		{"no kind here", layout.FlashMessage{Type: FlashInfo, Message: "no kind here"}},
		{"bogus:x", layout.FlashMessage{Type: FlashInfo, Message: "x"}},
		{"info:a:b", layout.FlashMessage{Type: FlashInfo, Message: "a:b"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, &tt.want, parseFlash(tt.value))
		})
	}
}
