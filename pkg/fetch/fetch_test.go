package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPResolve(t *testing.T) {
	h, err := NewHTTP("http://example.com/docs/viewer/index.html")
	require.NoError(t, err)

	u, err := h.Resolve("../../data/doc1/doc1_3.xml")
	require.NoError(t, err)
	require.Equal(t, "http://example.com/data/doc1/doc1_3.xml", u.String())
}

func TestHTTPFetch(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")

		if r.URL.Path != "/data/doc1/doc1_3.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<PAGE/>"))
	}))
	defer server.Close()

	h, err := NewHTTP(server.URL+"/docs/viewer/", WithClient(server.Client()), WithUserAgent("pageview-test"))
	require.NoError(t, err)

	data, err := h.Fetch(context.Background(), "../../data/doc1/doc1_3.xml")
	require.NoError(t, err)
	require.Equal(t, "<PAGE/>", string(data))
	require.Equal(t, "/data/doc1/doc1_3.xml", gotPath)
	require.Equal(t, "pageview-test", gotAgent)

	_, err = h.Fetch(context.Background(), "../../data/nope/nope_1.xml")
	require.ErrorIs(t, err, ErrStatus)
}

func TestHTTPFetchCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<PAGE/>"))
	}))
	defer server.Close()

	h, err := NewHTTP(server.URL + "/")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Fetch(ctx, "a.xml")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPInvalid(t *testing.T) {
	_, err := NewHTTP("http://")
	require.Error(t, err)
}

func TestDirFetch(t *testing.T) {
	root := t.TempDir()
	viewerDir := filepath.Join(root, "docs", "viewer")
	dataDir := filepath.Join(root, "data", "doc1")
	require.NoError(t, os.MkdirAll(viewerDir, 0755))
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "doc1_3.xml"), []byte("<PAGE/>"), 0644))

	src, err := New(viewerDir)
	require.NoError(t, err)
	require.IsType(t, Dir(""), src)

	data, err := src.Fetch(context.Background(), "../../data/doc1/doc1_3.xml")
	require.NoError(t, err)
	require.Equal(t, "<PAGE/>", string(data))

	_, err = src.Fetch(context.Background(), "../../data/doc1/doc1_4.xml")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirFetchStaysInSite(t *testing.T) {
	tmp := t.TempDir()
	viewerDir := filepath.Join(tmp, "site", "docs", "viewer")
	privateDir := filepath.Join(tmp, "private")
	require.NoError(t, os.MkdirAll(viewerDir, 0755))
	require.NoError(t, os.MkdirAll(privateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(privateDir, "secret_1.xml"), []byte("<PAGE/>"), 0644))

	src := Dir(viewerDir)

	// pid=../../private/secret, page=1
	_, err := src.Fetch(context.Background(), "../../data/../../private/secret/../../private/secret_1.xml")
	require.ErrorIs(t, err, ErrOutsideRoot)

	_, err = src.Fetch(context.Background(), "../../../private/secret_1.xml")
	require.ErrorIs(t, err, ErrOutsideRoot)
}

func TestDirFetchSymlinkEscape(t *testing.T) {
	tmp := t.TempDir()
	viewerDir := filepath.Join(tmp, "site", "docs", "viewer")
	privateDir := filepath.Join(tmp, "private")
	require.NoError(t, os.MkdirAll(viewerDir, 0755))
	require.NoError(t, os.MkdirAll(privateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(privateDir, "secret_1.xml"), []byte("<PAGE/>"), 0644))

	if err := os.Symlink(privateDir, filepath.Join(tmp, "site", "data")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := Dir(viewerDir).Fetch(context.Background(), "../../data/secret_1.xml")
	require.Error(t, err)
}

func TestNewPicksHTTP(t *testing.T) {
	src, err := New("https://example.com/viewer/")
	require.NoError(t, err)
	require.IsType(t, &HTTP{}, src)
}
