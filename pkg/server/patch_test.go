package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/patch?selector=%23out&mode=inner",
		strings.NewReader("- {tag: p, text: hi}"))
	req.Header.Set("Accept", "text/event-stream")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "#out")
	assert.Contains(t, body, "inner")
	assert.Contains(t, body, "<p>hi</p>")
}

func TestPatchErrorsBeforeStream(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		url  string
		body string
		code string
	}{
		{"unknown mode", "/v1/patch?mode=sideways", "- {tag: p}", "H030"},
		{"bad document", "/v1/patch", "- tag: p\n  attrs: {1: x}\n", "H002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeJSON(t, rec)["code"])
		})
	}
}
