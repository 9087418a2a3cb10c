package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRender(t *testing.T, req RenderRequest) (*httptest.ResponseRecorder, RenderResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
	NewServer(":0", nil).Handler().ServeHTTP(rec, httpReq)

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestIndexPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "classDiagram")
}

func TestRenderSuccess(t *testing.T) {
	rec, resp := doRender(t, RenderRequest{Source: "classDiagram\nAnimal <|-- Dog"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, resp.RenderID)
	assert.Empty(t, resp.Error)
	assert.Contains(t, resp.SVG, `id="node-Dog"`)
	assert.Contains(t, resp.SVG, `id="edge-Dog-Animal-0"`)
}

func TestRenderThemeAndCurved(t *testing.T) {
	_, resp := doRender(t, RenderRequest{Source: "classDiagram\nA --> B", Theme: "dark", Curved: true})
	assert.Contains(t, resp.SVG, `data-theme="dark"`)
	assert.Contains(t, resp.SVG, " Q ")
}

func TestRenderParseErrorIsUnprocessable(t *testing.T) {
	rec, resp := doRender(t, RenderRequest{Source: "graph TD"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, resp.SVG)
	assert.Contains(t, resp.Error, "classDiagram")
}

func TestRenderAppliesOffsets(t *testing.T) {
	plain, withOffset := RenderRequest{Source: "classDiagram\nA --> B"}, RenderRequest{
		Source:  "classDiagram\nA --> B",
		Offsets: map[string][2]float64{"B": {25, 40}, "Ghost": {1, 1}},
	}

	_, base := doRender(t, plain)
	rec, resp := doRender(t, withOffset)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.SVG, `translate(25.00,40.00)`)
	assert.NotEqual(t, base.SVG, resp.SVG, "moved node must change the edge path")
	assert.NotContains(t, resp.SVG, "Ghost")
}

func TestRenderRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{not json"))
	NewServer(":0", nil).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
