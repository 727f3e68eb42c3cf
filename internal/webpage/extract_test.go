package webpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html>
<head>
	<title> Example Domain </title>
	<style>body { color: red; }</style>
	<link rel="stylesheet" href="ignored.css">
</head>
<body>
	<h1>Example</h1>
	<script>console.log("never index me");</script>
	<p>This domain is for use in examples.</p>
</body>
</html>`

func TestExtract(t *testing.T) {
	page, err := Extract(strings.NewReader(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "Example Domain", page.Title)
	assert.Contains(t, page.Body, "Example")
	assert.Contains(t, page.Body, "This domain is for use in examples.")
	assert.NotContains(t, page.Body, "console.log")
	assert.NotContains(t, page.Body, "color: red")
}

func TestExtractNoTitle(t *testing.T) {
	page, err := Extract(strings.NewReader("<html><body><p>hello</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Equal(t, "hello", page.Body)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 9000))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	// exact fit is not cut and gets no marker
	assert.Equal(t, "abc", Truncate("abc", 3))
}

func TestFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	page, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", page.Title)
}

func TestFetcherNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher().Fetch(context.Background(), server.URL)
	assert.ErrorContains(t, err, "status 404")
}
