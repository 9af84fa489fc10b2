package helmtest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// IndexPath is the path [NewIndexServer] serves the index document on.
const IndexPath = "/charts/index.yaml"

var testDataDir string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	testDataDir = filepath.Join(filepath.Dir(filename), "testdata")
}

// Fixture returns the contents of the named file in the helmtest testdata
// directory.
func Fixture(tb testing.TB, name string) []byte {
	tb.Helper()

	data, err := os.ReadFile(filepath.Join(testDataDir, name))
	if err != nil {
		tb.Fatalf("read fixture %q: %v", name, err)
	}

	return data
}

// NewIndexServer starts a chart repository serving index on [IndexPath]. Any
// other path returns 404. The server is closed when the test ends.
func NewIndexServer(tb testing.TB, index []byte) *httptest.Server {
	tb.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(IndexPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write(index)
	})

	srv := httptest.NewServer(mux)
	tb.Cleanup(srv.Close)

	return srv
}

// NewStatusServer starts a server that answers every request with status.
func NewStatusServer(tb testing.TB, status int) *httptest.Server {
	tb.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	tb.Cleanup(srv.Close)

	return srv
}
