package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T, opts Options) *Core {
	t.Helper()
	core, err := New(opts, nil, nil)
	require.NoError(t, err)
	return core
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestFetchPageSuccessDerivesTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>  Example  </title></head></html>"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("New Tab")

	page, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)

	assert.Equal(t, 200, page.Status)
	assert.Equal(t, "text/html", page.MIMEType)
	assert.Contains(t, page.Body, "Example")
	assert.False(t, page.ReceivedAt.IsZero())

	snap := core.Tabs()
	require.Len(t, snap, 1)
	assert.Equal(t, "Example", snap[0].Title)
	assert.Equal(t, server.URL, snap[0].URL.String())
	assert.False(t, snap[0].LastLoaded.IsZero())
}

func TestFetchPageNonHTMLUsesURLAsTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("pretend png"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("New Tab")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)

	snap := core.Tabs()
	assert.Equal(t, server.URL, snap[0].Title)
}

func TestFetchPageNoTitleElementRetainsPrevious(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("Previous Title")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)

	snap := core.Tabs()
	assert.Equal(t, "Previous Title", snap[0].Title)
	assert.NotNil(t, snap[0].URL)
}

func TestFetchPageEmptyTitleRetainsPrevious(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>   </title></head></html>"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("Keep Me")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)

	assert.Equal(t, "Keep Me", core.Tabs()[0].Title)
}

func TestFetchPageInvalidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte{0xff, 0xfe, 0xfd, '<', 'h', 't', 'm', 'l', '>'})
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("Untouched")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.ErrorIs(t, err, ErrInvalidBody)

	// Nothing committed on failure.
	snap := core.Tabs()
	assert.Equal(t, "Untouched", snap[0].Title)
	assert.Nil(t, snap[0].URL)
	assert.True(t, snap[0].LastLoaded.IsZero())
}

func TestFetchPageNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := server.URL
	server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("Untouched")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, unreachable)})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, unreachable, netErr.URL)
	assert.Error(t, netErr.Unwrap())

	snap := core.Tabs()
	assert.Nil(t, snap[0].URL)
	assert.True(t, snap[0].LastLoaded.IsZero())
}

func TestFetchPageNonOKStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><head><title>Missing</title></head></html>"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("New Tab")

	page, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.Status)
	assert.Equal(t, "Missing", core.Tabs()[0].Title)
}

func TestFetchPageSendsConfiguredUserAgent(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	core := newTestCore(t, Options{UserAgent: "asterix-test/1.0"})
	tab := core.CreateTab("New Tab")

	_, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL)})
	require.NoError(t, err)
	assert.Equal(t, "asterix-test/1.0", seen)
}

func TestFetchPageFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Landed</title></head></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	core := newTestCore(t, Options{})
	tab := core.CreateTab("New Tab")

	page, err := core.FetchPage(context.Background(), PageRequest{Tab: tab.ID, URL: mustParse(t, server.URL+"/start")})
	require.NoError(t, err)
	assert.Equal(t, 200, page.Status)
	assert.Equal(t, "Landed", core.Tabs()[0].Title)
}

func TestDeriveTitle(t *testing.T) {
	target := mustParse(t, "https://example.test/doc")

	tests := []struct {
		name string
		mime string
		body string
		want string
	}{
		{"html title trimmed", "text/html", "<html><head><title>  Example  </title></head></html>", "Example"},
		{"html with charset param", "text/html; charset=utf-8", "<title>Charset</title>", "Charset"},
		{"non-html uses url", "image/png", "binary-ish", "https://example.test/doc"},
		{"no title element", "text/html", "<html></html>", ""},
		{"whitespace-only title", "text/html", "<title>   </title>", ""},
		{"first text node only", "text/html", "<title>First<b>Second</b></title>", "First"},
		{"no mime parses as html", "", "<title>Sniffed</title>", "Sniffed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &PageResponse{URL: target, MIMEType: tt.mime, Body: tt.body}
			assert.Equal(t, tt.want, deriveTitle(page))
		})
	}
}
