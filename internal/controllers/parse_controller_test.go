package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsongrid/backend/internal/models"
	"github.com/jsongrid/backend/internal/services"
)

// parseResponse mirrors the ParseResult wire format.
type parseResponse struct {
	Success bool               `json:"success"`
	Columns []models.Column    `json:"columns"`
	Rows    []models.Row       `json:"rows"`
	Error   *models.ParseError `json:"error"`
}

func newParseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := NewParseController(services.NewParserService(), models.ModeJSON)
	r.POST("/parse", pc.Parse)
	r.POST("/parse/fix", pc.Fix)
	r.GET("/examples", pc.GetExamples)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseEndpoint(t *testing.T) {
	r := newParseRouter()

	w := doJSON(t, r, http.MethodPost, "/parse", ParseRequest{Text: `{"id":1,"name":"Alice"}`})
	require.Equal(t, http.StatusOK, w.Code)

	var resp parseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.Len(t, resp.Columns, 2)
	assert.Equal(t, "id", resp.Columns[0].Field)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 0, resp.Rows[0].ID)
	assert.Equal(t, []string{"id", "name"}, resp.Rows[0].Fields.Keys())
	assert.Equal(t, models.NumberValue(1), resp.Rows[0].Value("id"))
}

func TestParseEndpointFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		kind   models.ErrorKind
	}{
		{"empty input", ParseRequest{Text: ""}, http.StatusUnprocessableEntity, models.ErrorEmptyInput},
		{"empty array", ParseRequest{Text: "[]"}, http.StatusUnprocessableEntity, models.ErrorEmptyArray},
		{"malformed", ParseRequest{Text: "[{id:1}]"}, http.StatusUnprocessableEntity, models.ErrorMalformedSyntax},
		{"mode mismatch", ParseRequest{Text: `[{"a":1}]`, Mode: "log"}, http.StatusUnprocessableEntity, models.ErrorModeMismatch},
		{"invalid mode", ParseRequest{Text: `[{"a":1}]`, Mode: "xml"}, http.StatusBadRequest, ""},
		{"invalid body", "{not json", http.StatusBadRequest, ""},
	}

	r := newParseRouter()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/parse", test.body)
			assert.Equal(t, test.status, w.Code)
			if test.kind == "" {
				return
			}
			var resp parseResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, test.kind, resp.Error.Kind)
			assert.Empty(t, resp.Rows)
		})
	}
}

func TestFixEndpoint(t *testing.T) {
	w := doJSON(t, newParseRouter(), http.MethodPost, "/parse/fix", FixRequest{Text: `[{id:1, name:"NoQuotes"}]`})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `[{"id":1, "name":"NoQuotes"}]`, resp["text"])
}

func TestExamplesEndpoint(t *testing.T) {
	w := doJSON(t, newParseRouter(), http.MethodGet, "/examples", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Examples []services.Example `json:"examples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Examples, len(services.Examples()))
	assert.Equal(t, models.ModeLog, resp.Examples[len(resp.Examples)-1].Mode)
}
