package jsonutil_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

func TestUnmarshalJsonResponse(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","name":"Ada"}`))

		got, err := jsonutil.UnmarshalJsonResponse[body](req)
		require.NoError(t, err)
		assert.Equal(t, body{Email: "a@b.co", Name: "Ada"}, got)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))

		_, err := jsonutil.UnmarshalJsonResponse[body](req)
		assert.Error(t, err)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		_, err := jsonutil.UnmarshalJsonResponse[body](req)
		assert.EqualError(t, err, "request body is empty")
	})

	t.Run("reports validation failures by field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))

		_, err := jsonutil.UnmarshalJsonResponse[body](req)
		assert.EqualError(t, err, "email failed on the 'email' rule")
	})

	t.Run("skips validation for non struct types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"q1":"yes"}`))

		got, err := jsonutil.UnmarshalJsonResponse[map[string]any](req)
		require.NoError(t, err)
		assert.Equal(t, "yes", got["q1"])
	})
}

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	jsonutil.WriteJSONResponse(rec, jsonutil.Response{Status: "success", Message: "ok"}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "success", got["status"])
	_, hasData := got["data"]
	assert.False(t, hasData)
}
