package webapp

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>finance</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	mux := http.NewServeMux()
	Register(mux, dir)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRegister(t *testing.T) {
	mux := newTestMux(t)

	w := get(mux, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/webapp", w.Header().Get("Location"))

	w = get(mux, "/webapp")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "finance")

	w = get(mux, "/webapp/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = get(mux, "/webapp/missing.css")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(mux, "/elsewhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
