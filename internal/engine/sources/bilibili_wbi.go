package sources

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// WBI request signing.
//
// Bilibili gates its web read endpoints (the conclusion endpoint included)
// behind the "WBI" scheme: the caller fetches an image-key/sub-key pair from
// the nav endpoint, derives a 32-char mixin key by permuting their
// concatenation, then appends wts (unix seconds) and w_rid
// (md5(sorted-query + mixin-key)) to the request.
//
// This is a compatibility contract, not a design: the permutation table, the
// lexicographic parameter ordering, %20 space encoding, and the "!'()*"
// value filter all have to match what the platform's own web client does.
// A wrong signature does not produce an HTTP error — the API answers 200
// with a refusal payload.

var mixinKeyEncTab = [64]int{
	46, 47, 18, 2, 53, 8, 23, 32, 15, 50, 10, 31, 58, 3, 45, 35, 27, 43, 5, 49,
	33, 9, 42, 19, 29, 28, 14, 39, 12, 38, 41, 13, 37, 48, 7, 16, 24, 55, 40,
	61, 26, 17, 0, 1, 60, 51, 30, 4, 22, 25, 54, 21, 56, 59, 6, 63, 57, 62, 11,
	36, 20, 34, 44, 52,
}

// mixinKey derives the signing key from a fresh img/sub key pair.
func mixinKey(imgKey, subKey string) string {
	raw := imgKey + subKey
	var sb strings.Builder
	sb.Grow(32)
	for _, i := range mixinKeyEncTab[:32] {
		if i < len(raw) {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// unsafeWbiChars are stripped from parameter values before signing,
// mirroring the platform's own client.
const unsafeWbiChars = "!'()*"

func sanitizeWbiValue(v string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeWbiChars, r) {
			return -1
		}
		return r
	}, v)
}

// wbiEscape percent-encodes like encodeURIComponent: spaces become %20.
func wbiEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// signWbiQuery builds the canonical signed query string for params: keys
// sorted lexicographically, values sanitized and escaped, wts appended, and
// w_rid computed over the result. Deterministic for fixed inputs.
func signWbiQuery(params map[string]string, imgKey, subKey string, wts int64) string {
	signed := make(map[string]string, len(params)+1)
	for k, v := range params {
		signed[k] = v
	}
	signed["wts"] = strconv.FormatInt(wts, 10)

	keys := make([]string, 0, len(signed))
	for k := range signed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(wbiEscape(k))
		sb.WriteByte('=')
		sb.WriteString(wbiEscape(sanitizeWbiValue(signed[k])))
	}
	query := sb.String()

	sum := md5.Sum([]byte(query + mixinKey(imgKey, subKey)))
	return query + "&w_rid=" + hex.EncodeToString(sum[:])
}
