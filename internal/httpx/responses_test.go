package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONSuccess(w, r, map[string]string{"k": "v"}, map[string]interface{}{"page": 0})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "req-1", meta["request_id"])
	assert.Equal(t, float64(0), meta["page"])
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found with id 9", nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "Book not found with id 9", errBody["message"])
}

func TestJSONErrorDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", []ErrorDetail{
		{Field: "title", Message: "Title cannot be blank"},
	})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	details := body["error"].(map[string]interface{})["details"].([]interface{})
	require.Len(t, details, 1)
	first := details[0].(map[string]interface{})
	assert.Equal(t, "title", first["field"])
}
