package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbreo/paradedb/internal/settings"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &settings.Settings{}
	s.ApplyDefaults()
	return NewRouter(s, testLogger())
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr), "body: %s", w.Body.String())
	return apiErr
}

func TestTokenizerHandler(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "name only",
			requestBody:    `{"name":"simple"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"simple"}`,
		},
		{
			name:           "all options",
			requestBody:    `{"name":"ngram","min_gram":2,"max_gram":4,"prefix_only":true,"language":"English","pattern":"\\w+"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"ngram","min_gram":2,"max_gram":4,"prefix_only":true,"language":"English","pattern":"\\w+"}`,
		},
		{
			name:           "null options are omitted",
			requestBody:    `{"name":"ngram","min_gram":null,"prefix_only":false}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"ngram","prefix_only":false}`,
		},
		{
			name:           "gram range is not validated",
			requestBody:    `{"name":"ngram","min_gram":5,"max_gram":1}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"ngram","min_gram":5,"max_gram":1}`,
		},
		{
			name:           "missing name",
			requestBody:    `{"min_gram":2}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty name",
			requestBody:    `{"name":"  "}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown attribute",
			requestBody:    `{"name":"ngram","min_grams":2}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong type",
			requestBody:    `{"name":"ngram","min_gram":"two"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "fractional gram",
			requestBody:    `{"name":"ngram","min_gram":2.5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/tokenizer", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestFieldHandler(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "empty body attributes",
			requestBody:    `{"name":"f"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"f":{}}`,
		},
		{
			name: "composition",
			requestBody: `{"name":"body","indexed":true,"stored":false,
				"tokenizer":{"type":"ngram","min_gram":3,"max_gram":3}}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"body":{"indexed":true,"stored":false,"tokenizer":{"type":"ngram","min_gram":3,"max_gram":3}}}`,
		},
		{
			name: "every attribute",
			requestBody: `{"name":"field1","indexed":true,"stored":false,"fast":true,"fieldnorms":false,
				"record":"position","expand_dots":true,"normalizer":"lowercase",
				"tokenizer":{"type":"ngram","min_gram":4,"max_gram":4,"prefix_only":false}}`,
			expectedStatus: http.StatusOK,
			expectedBody: `{"field1":{"indexed":true,"stored":false,"fast":true,"fieldnorms":false,
				"record":"position","expand_dots":true,"normalizer":"lowercase",
				"tokenizer":{"type":"ngram","min_gram":4,"max_gram":4,"prefix_only":false}}}`,
		},
		{
			name:           "tokenizer embedded verbatim",
			requestBody:    `{"name":"f","tokenizer":{"type":"custom","options":{"depth":2}}}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"f":{"tokenizer":{"type":"custom","options":{"depth":2}}}}`,
		},
		{
			name:           "null tokenizer is omitted",
			requestBody:    `{"name":"f","tokenizer":null,"fast":true}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"f":{"fast":true}}`,
		},
		{
			name:           "tokenizer with array value",
			requestBody:    `{"name":"f","tokenizer":{"type":"custom","stopwords":["a"]}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "tokenizer not an object",
			requestBody:    `{"name":"f","tokenizer":"ngram"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown attribute",
			requestBody:    `{"name":"f","sorted":true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong type",
			requestBody:    `{"name":"f","indexed":"yes"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name not a string",
			requestBody:    `{"name":42}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty request body",
			requestBody:    ``,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/field", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestFieldHandler_TokenizerFromTokenizerHandler(t *testing.T) {
	router := setupTestRouter()

	tokW := postJSON(router, "/tokenizer", `{"name":"stem","language":"French"}`)
	require.Equal(t, http.StatusOK, tokW.Code)

	fieldW := postJSON(router, "/field", `{"name":"description","tokenizer":`+tokW.Body.String()+`}`)
	require.Equal(t, http.StatusOK, fieldW.Code)

	var fieldDoc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(fieldW.Body.Bytes(), &fieldDoc))
	assert.JSONEq(t, tokW.Body.String(), string(fieldDoc["description"]["tokenizer"]))
}

func TestValidationErrorResponse(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(router, "/field", `{"name":"f","indexd":true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	apiErr := decodeAPIError(t, w)
	assert.Equal(t, ErrorCodeValidationFailed, apiErr.Code)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "indexd", apiErr.Details[0].Field)
	assert.Contains(t, apiErr.Details[0].Message, "field does not accept attribute 'indexd'")
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestTypeMismatchResponse_ReportsAttributeName(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name        string
		path        string
		requestBody string
		wantField   string
	}{
		{name: "tokenizer gram", path: "/tokenizer", requestBody: `{"name":"ngram","min_gram":"x"}`, wantField: "min_gram"},
		{name: "tokenizer flag", path: "/tokenizer", requestBody: `{"name":"ngram","prefix_only":1}`, wantField: "prefix_only"},
		{name: "field flag", path: "/field", requestBody: `{"name":"f","stored":"no"}`, wantField: "stored"},
		{name: "field string", path: "/field", requestBody: `{"name":"f","record":true}`, wantField: "record"},
		{name: "name", path: "/field", requestBody: `{"name":42}`, wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, tt.path, tt.requestBody)
			require.Equal(t, http.StatusBadRequest, w.Code)

			apiErr := decodeAPIError(t, w)
			assert.Equal(t, ErrorCodeValidationFailed, apiErr.Code)
			require.Len(t, apiErr.Details, 1)
			assert.Equal(t, tt.wantField, apiErr.Details[0].Field)
		})
	}
}

func TestUnknownAttributesResponse(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(router, "/tokenizer", `{"name":"ngram","type":"raw","min_grams":2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	apiErr := decodeAPIError(t, w)
	require.Len(t, apiErr.Details, 2)
	assert.Equal(t, "min_grams", apiErr.Details[0].Field)
	assert.Equal(t, "type", apiErr.Details[1].Field)
	assert.Contains(t, apiErr.Details[1].Message, "tokenizer does not accept attribute 'type'")
}

func TestPanicRecovery(t *testing.T) {
	router := setupTestRouter()
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decodeAPIError(t, w)
	assert.Equal(t, ErrorCodeInternalError, apiErr.Code)
	assert.Contains(t, apiErr.Message, "panic: boom")
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestDocumentValueErrorResponse(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(router, "/field", `{"name":"f","tokenizer":{"type":"x","nested":{"bad":1.5}}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	apiErr := decodeAPIError(t, w)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "tokenizer.nested.bad", apiErr.Details[0].Field)
}

func TestInvalidJSONResponse(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(router, "/tokenizer", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorCodeInvalidJSON, decodeAPIError(t, w).Code)
}

func TestRequestTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(&settings.Settings{MaxRequestBytes: 16}, testLogger())

	w := postJSON(router, "/tokenizer", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "fieldconfig", body["service"])
}

func TestNoRoute(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/indexes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeRouteNotFound, decodeAPIError(t, w).Code)
}
