package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_bili/internal/engine"
)

// Short-link and BV-id resolution — the lookup collaborator the summary
// tool's invalid-id message points callers at. Accepts a BV id, an av id,
// a b23.tv short link, or a full bilibili.com/video URL.

var errUnresolvable = errors.New("could not find a video id; expected an av/BV id, a b23.tv link, or a bilibili.com/video URL")

// resolvableHosts limits redirect following and URL parsing to Bilibili's
// own domains. Anything else is rejected instead of fetched.
var resolvableHosts = map[string]bool{
	"b23.tv":           true,
	"bilibili.com":     true,
	"www.bilibili.com": true,
	"m.bilibili.com":   true,
}

// ResolveVideoID normalizes any accepted input form down to a numeric avid,
// confirming it against the view endpoint so the caller also gets the title.
func ResolveVideoID(ctx context.Context, input string) (*ResolvedID, error) {
	engine.IncrResolveRequests()

	in := strings.TrimSpace(input)
	if in == "" {
		return nil, errUnresolvable
	}

	// Bare ids classify without network I/O.
	if avid, err := NormalizeAvid(in); err == nil {
		return resolveView(ctx, url.Values{"aid": {strconv.FormatInt(avid, 10)}}, avid)
	}
	if IsBvid(in) {
		return resolveView(ctx, url.Values{"bvid": {in}}, 0)
	}

	token, err := tokenFromURL(ctx, in)
	if err != nil {
		return nil, err
	}
	if IsBvid(token) {
		return resolveView(ctx, url.Values{"bvid": {token}}, 0)
	}
	avid, err := NormalizeAvid(token)
	if err != nil {
		return nil, errUnresolvable
	}
	return resolveView(ctx, url.Values{"aid": {strconv.FormatInt(avid, 10)}}, avid)
}

func resolveView(ctx context.Context, query url.Values, avid int64) (*ResolvedID, error) {
	view, err := fetchView(ctx, query, avid)
	if err != nil {
		return nil, err
	}
	if view.Aid <= 0 {
		return nil, fmt.Errorf("%w: view response missing aid", ErrUpstreamShape)
	}
	return &ResolvedID{
		Avid:  view.Aid,
		AvTag: "av" + strconv.FormatInt(view.Aid, 10),
		Bvid:  view.Bvid,
		Title: view.Title,
	}, nil
}

// tokenFromURL extracts the av/BV token from a Bilibili URL, following
// b23.tv short-link redirects when needed.
func tokenFromURL(ctx context.Context, in string) (string, error) {
	if !strings.Contains(in, "://") {
		in = "https://" + in
	}
	u, err := url.Parse(in)
	if err != nil || !resolvableHosts[u.Hostname()] {
		return "", errUnresolvable
	}

	if tok := extractVideoToken(u.Path); tok != "" {
		return tok, nil
	}
	if u.Hostname() != "b23.tv" {
		return "", errUnresolvable
	}

	final, err := followShortLink(ctx, u.String())
	if err != nil {
		return "", fmt.Errorf("short link: %w", err)
	}
	if !resolvableHosts[final.Hostname()] {
		return "", errUnresolvable
	}
	if tok := extractVideoToken(final.Path); tok != "" {
		return tok, nil
	}
	return "", errUnresolvable
}

// followShortLink issues a GET and reports the post-redirect URL.
// The body is discarded; only the final location matters.
func followShortLink(ctx context.Context, link string) (*url.URL, error) {
	if err := engine.WaitOutbound(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout())
	defer cancel()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	return resp.Request.URL, nil
}
