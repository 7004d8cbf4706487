package acquire

import (
	"cardstats/internal/manifest"
	"cardstats/internal/telemetry"
	"cardstats/lib/testutil"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<h1>Index of /rdocs/ATM/DOCs</h1>
<ul>
  <li><a href="ATMSEPTEMBER2025.XLSX">ATM September
      2025</a></li>
  <li><a href="/rdocs/ATM/DOCs/ATMAUGUST2025.XLSX">ATM August 2025</a></li>
  <li><a href="ATMSEPTEMBER2025.XLSX#top">duplicate</a></li>
  <li><a href="ATMJULY2025.XLSX">ATM July 2025 (removed)</a></li>
  <li><a href="ATM%20Statistics.xls">ATM statistics (legacy)</a></li>
  <li><a href="POS012025.XLSX">POS</a></li>
  <li><a href="../">Parent directory</a></li>
  <li><a href="">empty</a></li>
</ul>
</body></html>`

var xlsxBody = []byte("PK\x03\x04 not a real workbook")

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/rdocs/ATM/DOCs/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rdocs/ATM/DOCs/":
			w.Header().Set("content-type", "text/html")
			fmt.Fprint(w, listingPage)
		case "/rdocs/ATM/DOCs/ATMSEPTEMBER2025.XLSX", "/rdocs/ATM/DOCs/ATMAUGUST2025.XLSX":
			w.Write(xlsxBody)
		case "/rdocs/ATM/DOCs/ATM Statistics.xls":
			w.Header().Set("content-type", "text/html")
			fmt.Fprint(w, "<html>Request Rejected</html>")
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, rec *telemetry.Recorder) *Client {
	_, cleanup := testutil.SetupComponent(t, testutil.ComponentParams{Name: "acquire"})
	t.Cleanup(cleanup)

	client, err := NewClient(Config{
		ListingURL: srv.URL + "/rdocs/ATM/DOCs/",
	}, rec)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestListDocuments(t *testing.T) {
	srv := newServer(t)
	client := newTestClient(t, srv, &telemetry.Recorder{})

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	base := srv.URL + "/rdocs/ATM/DOCs/"
	expected := []Document{
		{Name: "ATM Statistics.xls", URL: base + "ATM%20Statistics.xls"},
		{Name: "ATMAUGUST2025.XLSX", URL: base + "ATMAUGUST2025.XLSX"},
		{Name: "ATMJULY2025.XLSX", URL: base + "ATMJULY2025.XLSX"},
		{Name: "ATMSEPTEMBER2025.XLSX", URL: base + "ATMSEPTEMBER2025.XLSX"},
	}
	if diff := cmp.Diff(expected, docs); diff != "" {
		t.Fatal(diff)
	}
}

func TestAcquire(t *testing.T) {
	srv := newServer(t)
	rec := &telemetry.Recorder{}
	client := newTestClient(t, srv, rec)

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.jsonl")
	result, err := client.Acquire(context.Background(), dir, manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, result.Entries, 3)
	require.Len(t, result.Failed, 1)
	require.Equal(t, "ATMJULY2025.XLSX", result.Failed[0].Name)
	require.Len(t, rec.Find("acquire:download"), 1)
	require.Len(t, rec.Find("acquire:download-not-spreadsheet"), 1)

	contents, err := os.ReadFile(filepath.Join(dir, "ATMSEPTEMBER2025.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, xlsxBody, contents)
	require.FileExists(t, filepath.Join(dir, "ATMAUGUST2025.xlsx"))
	require.FileExists(t, filepath.Join(dir, "ATM Statistics.xls"))

	entries, lineErrs, err := manifest.Read(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, lineErrs)
	require.Len(t, entries, 3)

	require.Equal(t, filepath.Join(dir, "ATM Statistics.xls"), entries[0].Path)
	require.Nil(t, entries[0].Year)

	require.Equal(t, filepath.Join(dir, "ATMAUGUST2025.xlsx"), entries[1].Path)
	require.Equal(t, 2025, *entries[1].Year)
	require.Equal(t, 8, *entries[1].Month)
	require.Equal(t, srv.URL+"/rdocs/ATM/DOCs/ATMAUGUST2025.XLSX", entries[1].SourceURL)

	require.Equal(t, 9, *entries[2].Month)
}

func TestListDocumentsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	rec := &telemetry.Recorder{}
	client := newTestClient(t, srv, rec)
	_, err := client.ListDocuments(context.Background())
	require.Error(t, err)
	require.Len(t, rec.Find("acquire:list-documents"), 1)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, "ATMSEPTEMBER2025.xlsx", LocalName(Document{Name: "ATMSEPTEMBER2025.XLSX"}))
	require.Equal(t, "ATM.May.2025.xls", LocalName(Document{Name: "ATM.May.2025.XLS"}))
}
