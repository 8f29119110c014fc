package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_bili/internal/engine"
	"github.com/google/uuid"
)

// Bilibili web API adapter: view (metadata), nav (WBI key source), and the
// AI conclusion endpoint. All calls share the same header/timeout/retry
// discipline and go through the engine's outbound rate limiter.

const (
	biliOrigin = "https://www.bilibili.com"

	viewPath       = "/x/web-interface/view"
	navPath        = "/x/web-interface/nav"
	conclusionPath = "/x/web-interface/view/conclusion/get"
)

// anonCookie is the fallback identity when BILIBILI_COOKIE is unset.
// Bilibili's risk control rejects cookie-less requests on some endpoints,
// so an anonymous buvid3 is generated once per process.
var anonCookie = sync.OnceValue(func() string {
	return "buvid3=" + strings.ToUpper(uuid.NewString()) + "infoc"
})

func cookieHeader() string {
	if engine.Cfg.Cookie != "" {
		return engine.Cfg.Cookie
	}
	return anonCookie()
}

func setBiliHeaders(req *http.Request, avid int64) {
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", biliOrigin)
	if avid > 0 {
		req.Header.Set("Referer", fmt.Sprintf("%s/video/av%d/", biliOrigin, avid))
	} else {
		req.Header.Set("Referer", biliOrigin+"/")
	}
	req.Header.Set("Cookie", cookieHeader())
}

func fetchTimeout() time.Duration {
	if t := engine.Cfg.FetchTimeout; t > 0 {
		return t
	}
	return 30 * time.Second
}

// apiGet performs one rate-limited, retried GET against the Bilibili API.
// avid > 0 derives the Referer from the video; 0 means a non-video endpoint.
func apiGet(ctx context.Context, pathAndQuery string, avid int64) ([]byte, error) {
	if err := engine.WaitOutbound(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout())
	defer cancel()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, engine.Cfg.APIBase+pathAndQuery, nil)
		if err != nil {
			return nil, err
		}
		setBiliHeaders(req, avid)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
}

// decodeEnvelope unwraps the {code, message, data} envelope.
// A non-zero code is an upstream refusal even though the HTTP status was 200.
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env biliEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamShape, err)
	}
	if env.Code != 0 {
		engine.IncrUpstreamErrors()
		return nil, &APIError{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}

// fetchView loads video metadata by aid or bvid. Never cached — page lists
// and owner data are request-scoped by design.
func fetchView(ctx context.Context, query url.Values, avid int64) (*viewData, error) {
	engine.IncrViewRequests()

	body, err := apiGet(ctx, viewPath+"?"+query.Encode(), avid)
	if err != nil {
		return nil, err
	}
	raw, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	var view viewData
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamShape, err)
	}
	return &view, nil
}

type wbiKeys struct {
	Img string `json:"img"`
	Sub string `json:"sub"`
}

// fetchWbiKeys returns the current WBI image-key/sub-key pair, cached under
// WBI_KEY_TTL. The nav endpoint reports code -101 for anonymous sessions but
// still carries wbi_img, so the envelope code is checked only after the keys
// turn out to be missing.
func fetchWbiKeys(ctx context.Context) (img, sub string, err error) {
	cacheKey := engine.CacheKey("wbi_keys")
	if keys, ok := engine.CacheLoadJSON[wbiKeys](ctx, cacheKey); ok {
		return keys.Img, keys.Sub, nil
	}

	engine.IncrNavKeyRequests()
	body, err := apiGet(ctx, navPath, 0)
	if err != nil {
		return "", "", err
	}

	var env biliEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUpstreamShape, err)
	}
	var nav navData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &nav); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUpstreamShape, err)
		}
	}

	img = wbiKeyFromURL(nav.WbiImg.ImgURL)
	sub = wbiKeyFromURL(nav.WbiImg.SubURL)
	if img == "" || sub == "" {
		if env.Code != 0 {
			engine.IncrUpstreamErrors()
			return "", "", &APIError{Code: env.Code, Message: env.Message}
		}
		return "", "", fmt.Errorf("%w: nav response has no wbi keys", ErrUpstreamShape)
	}

	data, _ := json.Marshal(wbiKeys{Img: img, Sub: sub})
	engine.CacheSetTTL(ctx, cacheKey, data, engine.Cfg.WbiKeyTTL)
	return img, sub, nil
}

// wbiKeyFromURL extracts the key from a wbi_img URL: the basename minus its
// extension, e.g. ".../wbi/7cd0…77c.png" → "7cd0…77c".
func wbiKeyFromURL(u string) string {
	if u == "" {
		return ""
	}
	base := u[strings.LastIndexByte(u, '/')+1:]
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		base = base[:dot]
	}
	return base
}

// GetConclusion fetches the AI summary for one page of a video and renders
// it as text. The two network calls are strictly sequential: the conclusion
// request needs the cid and owner mid from the view response.
//
// Identifier validation happens before any I/O; an out-of-range page fails
// after the view call without issuing the conclusion request.
func GetConclusion(ctx context.Context, videoID string, page int) (string, error) {
	avid, err := NormalizeAvid(videoID)
	if err != nil {
		return "", err
	}
	if page < 1 {
		return "", &PageRangeError{Page: page}
	}

	view, err := fetchView(ctx, url.Values{"aid": {strconv.FormatInt(avid, 10)}}, avid)
	if err != nil {
		return "", fmt.Errorf("video info: %w", err)
	}
	if view.Owner == nil || view.Owner.Mid == 0 {
		return "", fmt.Errorf("%w: view response missing owner mid", ErrUpstreamShape)
	}
	if len(view.Pages) == 0 {
		return "", fmt.Errorf("%w: view response has no pages", ErrUpstreamShape)
	}
	if page > len(view.Pages) {
		return "", &PageRangeError{Page: page, Pages: len(view.Pages)}
	}
	cid := view.Pages[page-1].Cid

	imgKey, subKey, err := fetchWbiKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("wbi keys: %w", err)
	}

	query := signWbiQuery(map[string]string{
		"aid":    strconv.FormatInt(avid, 10),
		"cid":    strconv.FormatInt(cid, 10),
		"up_mid": strconv.FormatInt(view.Owner.Mid, 10),
	}, imgKey, subKey, time.Now().Unix())

	engine.IncrConclusionRequests()
	body, err := apiGet(ctx, conclusionPath+"?"+query, avid)
	if err != nil {
		return "", fmt.Errorf("conclusion: %w", err)
	}
	raw, err := decodeEnvelope(body)
	if err != nil {
		return "", fmt.Errorf("conclusion: %w", err)
	}

	var data conclusionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamShape, err)
	}
	if data.ModelResult == nil {
		return "", fmt.Errorf("%w: conclusion response missing model_result", ErrUpstreamShape)
	}
	return formatConclusion(data.ModelResult), nil
}

// FetchVideoInfo loads metadata for an av-format id and maps it to the
// structured bili_video_info output.
func FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	avid, err := NormalizeAvid(videoID)
	if err != nil {
		return nil, err
	}
	view, err := fetchView(ctx, url.Values{"aid": {strconv.FormatInt(avid, 10)}}, avid)
	if err != nil {
		return nil, err
	}
	return viewToInfo(view)
}

func viewToInfo(view *viewData) (*VideoInfo, error) {
	if view.Owner == nil {
		return nil, fmt.Errorf("%w: view response missing owner", ErrUpstreamShape)
	}
	info := &VideoInfo{
		Avid:     view.Aid,
		Bvid:     view.Bvid,
		Title:    view.Title,
		Desc:     view.Desc,
		Duration: view.Duration,
		Owner:    OwnerInfo{Mid: view.Owner.Mid, Name: view.Owner.Name},
		Stats: VideoStats{
			Views:     view.Stat.View,
			Danmaku:   view.Stat.Danmaku,
			Likes:     view.Stat.Like,
			Coins:     view.Stat.Coin,
			Favorites: view.Stat.Favorite,
		},
	}
	for _, p := range view.Pages {
		info.Pages = append(info.Pages, PageInfo{
			Page:     p.Page,
			Cid:      p.Cid,
			Part:     p.Part,
			Duration: p.Duration,
		})
	}
	return info, nil
}
