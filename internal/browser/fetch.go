package browser

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// FetchPage performs exactly one HTTP GET for the request and normalizes the
// result. On success it commits url/last-loaded/title to the tab named by the
// request (a no-op if that tab no longer exists) and returns the response.
// Transport failures surface as *NetworkError; a non-UTF-8 body surfaces as
// ErrInvalidBody. In both failure cases no partial state reaches the
// registry.
//
// FetchPage is safe for concurrent use; the registry commit is the only
// shared mutation point and is lock-serialized.
func (c *Core) FetchPage(ctx context.Context, req PageRequest) (*PageResponse, error) {
	start := time.Now()

	page, err := c.fetch(ctx, req)
	c.metrics.NavigationDone(outcomeLabel(err), time.Since(start))
	if err != nil {
		c.log.Warn("fetch failed",
			zap.Stringer("url", req.URL),
			zap.Uint64("tab", uint64(req.Tab)),
			zap.Error(err))
		return nil, err
	}

	c.log.Info("page fetched",
		zap.Stringer("url", page.URL),
		zap.Int("status", page.Status),
		zap.Uint64("tab", uint64(req.Tab)))
	return page, nil
}

func (c *Core) fetch(ctx context.Context, req PageRequest) (*PageResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}

	resp, err := c.client.R().SetContext(ctx).Get(req.URL.String())
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}

	raw := resp.Body()
	if !utf8.Valid(raw) {
		return nil, invalidBodyError(raw)
	}

	mime := resp.Header().Get("Content-Type")
	if mime == "" && len(raw) > 0 {
		// No Content-Type from the server: sniff one so title derivation
		// has something to work with.
		mime = mimetype.Detect(raw).String()
	}

	page := &PageResponse{
		URL:        req.URL,
		Status:     resp.StatusCode(),
		MIMEType:   mime,
		Body:       string(raw),
		ReceivedAt: time.Now().UTC(),
	}

	c.tabs.applyFetchResult(req.Tab, page, deriveTitle(page))
	return page, nil
}

// deriveTitle picks a display title for a fetched page. Non-HTML documents
// use the URL itself. HTML documents use the first text node of the first
// <title> element, trimmed; an empty result means no title was derived and
// the tab keeps its previous one.
func deriveTitle(page *PageResponse) string {
	if page.MIMEType != "" && !strings.HasPrefix(page.MIMEType, "text/html") {
		return page.URL.String()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return ""
	}

	sel := doc.Find("title").First()
	if len(sel.Nodes) == 0 {
		return ""
	}
	for node := sel.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		if node.Type == html.TextNode {
			return strings.TrimSpace(node.Data)
		}
	}
	return ""
}

func outcomeLabel(err error) string {
	var netErr *NetworkError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &netErr):
		return "network"
	case errors.Is(err, ErrInvalidBody):
		return "invalid_body"
	default:
		return "error"
	}
}
