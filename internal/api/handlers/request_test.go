package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=5"`
	Count int    `json:"count" validate:"gte=1"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"abc","count":2}`, ""},
		{"missing name", `{"count":2}`, "Name (required)"},
		{"too long", `{"name":"abcdef","count":1}`, "Name (max)"},
		{"unknown field", `{"name":"a","count":1,"x":1}`, "unknown field"},
		{"broken json", `{"name":`, "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var req sampleRequest
			err := DecodeAndValidate(r, &req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": "-1"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	page, limit, err := Pagination(httptest.NewRequest("GET", "/?page=2&limit=50", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)

	_, _, err = Pagination(httptest.NewRequest("GET", "/?page=abc", nil))
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "занято")

	assert.Equal(t, 409, w.Code)
	assert.JSONEq(t, `{"code":409,"message":"занято"}`, w.Body.String())
}
