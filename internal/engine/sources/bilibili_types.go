package sources

import "encoding/json"

// Bilibili web API wire types. Every endpoint shares the same envelope:
// HTTP 200 + {code, message, data}; code != 0 is a business-level refusal.

type biliEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// --- /x/web-interface/view (video metadata) ---

type viewData struct {
	Aid      int64      `json:"aid"`
	Bvid     string     `json:"bvid"`
	Title    string     `json:"title"`
	Desc     string     `json:"desc"`
	Duration int        `json:"duration"` // seconds
	Owner    *viewOwner `json:"owner"`
	Stat     viewStat   `json:"stat"`
	Pages    []viewPage `json:"pages"`
}

type viewOwner struct {
	Mid  int64  `json:"mid"`
	Name string `json:"name"`
}

type viewStat struct {
	View     int64 `json:"view"`
	Danmaku  int64 `json:"danmaku"`
	Like     int64 `json:"like"`
	Coin     int64 `json:"coin"`
	Favorite int64 `json:"favorite"`
}

type viewPage struct {
	Cid      int64  `json:"cid"`
	Page     int    `json:"page"` // 1-based part number
	Part     string `json:"part"` // part title
	Duration int    `json:"duration"`
}

// --- /x/web-interface/nav (WBI key source) ---

type navData struct {
	WbiImg struct {
		ImgURL string `json:"img_url"`
		SubURL string `json:"sub_url"`
	} `json:"wbi_img"`
}

// --- /x/web-interface/view/conclusion/get (AI summary) ---

// Result-type tag values in conclusionModelResult.
const (
	conclusionNone    = 0 // platform declined to generate a summary
	conclusionSummary = 1 // plain summary only
	conclusionOutline = 2 // summary plus sectioned outline
)

type conclusionData struct {
	ModelResult *conclusionModelResult `json:"model_result"`
}

type conclusionModelResult struct {
	ResultType int                 `json:"result_type"`
	Summary    string              `json:"summary"`
	Outline    []conclusionSection `json:"outline"`
}

type conclusionSection struct {
	Title       string           `json:"title"`
	Timestamp   int              `json:"timestamp"` // seconds
	PartOutline []conclusionPart `json:"part_outline"`
}

type conclusionPart struct {
	Timestamp int    `json:"timestamp"` // seconds
	Content   string `json:"content"`
}

// --- exported tool-facing types ---

// VideoInfo is the structured bili_video_info output.
type VideoInfo struct {
	Avid     int64      `json:"avid"`
	Bvid     string     `json:"bvid"`
	Title    string     `json:"title"`
	Desc     string     `json:"desc,omitempty"`
	Duration int        `json:"duration"`
	Owner    OwnerInfo  `json:"owner"`
	Stats    VideoStats `json:"stats"`
	Pages    []PageInfo `json:"pages"`
}

type OwnerInfo struct {
	Mid  int64  `json:"mid"`
	Name string `json:"name"`
}

type VideoStats struct {
	Views     int64 `json:"views"`
	Danmaku   int64 `json:"danmaku"`
	Likes     int64 `json:"likes"`
	Coins     int64 `json:"coins"`
	Favorites int64 `json:"favorites"`
}

type PageInfo struct {
	Page     int    `json:"page"`
	Cid      int64  `json:"cid"`
	Part     string `json:"part"`
	Duration int    `json:"duration"`
}

// ResolvedID is the bili_resolve_id output.
type ResolvedID struct {
	Avid  int64  `json:"avid"`
	AvTag string `json:"av_tag"` // "av" + digits, ready for bili_summary
	Bvid  string `json:"bvid"`
	Title string `json:"title"`
}
