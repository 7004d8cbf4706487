package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestInstrumentClientDumps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>listing</html>"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dumps")
	output, err := NewFilesystemOutput(dir)
	if err != nil {
		t.Fatal(err)
	}

	client := resty.New()
	InstrumentClient(client, nil, output)

	res, err := client.R().Get(server.URL + "/rdocs/")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, http.StatusOK, res.StatusCode())

	dump, err := os.ReadFile(filepath.Join(dir, "1"))
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, strings.Contains(string(dump), "GET "+server.URL+"/rdocs/"))
	require.True(t, strings.Contains(string(dump), "<html>listing</html>"))
}
