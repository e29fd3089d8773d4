// Package videoid extracts the 11-character YouTube video identifier from
// user-supplied URL strings. YouTube exposes several distinct URL shapes
// (short links, watch pages, legacy /v/ paths, embeds), so extraction is an
// ordered list of matcher rules rather than one universal regex: each rule
// knows how to pull a candidate out of its shape, and every candidate must
// pass the same final validation gate before it is trusted.
package videoid

import (
	"net/url"
	"regexp"
	"strings"
)

// idPattern is the final validation gate: exactly 11 characters from the
// YouTube identifier alphabet.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// bareIDPattern finds an 11-character identifier embedded in arbitrary text.
// The surrounding groups reject candidates that are part of a longer run,
// so "dQw4w9WgXcQx" never yields "dQw4w9WgXcQ".
var bareIDPattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9_-])([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)

// rule pairs a URL-shape test with the strategy that extracts a candidate
// identifier from that shape. Rules are evaluated in order and the first
// matching shape wins; a matched shape that produces an invalid candidate
// does not fall through to later rules.
type rule struct {
	match   func(string) bool
	extract func(string) string
}

var rules = []rule{
	{contains("youtu.be/"), afterMarker("youtu.be/")},
	{contains("youtube.com/watch"), watchQueryParam},
	{contains("youtube.com/v/"), afterMarker("youtube.com/v/")},
	{contains("youtube.com/embed/"), afterMarker("youtube.com/embed/")},
	{func(string) bool { return true }, bareID},
}

// Extract returns the video identifier found in raw, or ("", false) when no
// identifier can be found. It never panics, regardless of input shape.
func Extract(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	var candidate string
	for _, r := range rules {
		if r.match(raw) {
			candidate = r.extract(raw)
			break
		}
	}

	if !idPattern.MatchString(candidate) {
		return "", false
	}
	return candidate, true
}

func contains(marker string) func(string) bool {
	return func(raw string) bool { return strings.Contains(raw, marker) }
}

// afterMarker takes everything after the marker and truncates at the first
// query, fragment, or parameter separator.
func afterMarker(marker string) func(string) string {
	return func(raw string) string {
		_, rest, _ := strings.Cut(raw, marker)
		if i := strings.IndexAny(rest, "?#&"); i >= 0 {
			rest = rest[:i]
		}
		return rest
	}
}

// watchQueryParam parses a watch-page URL and reads the v query parameter.
// An unparseable URL yields an empty candidate rather than an error.
func watchQueryParam(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// bareID scans arbitrary text for the first delimited 11-character token.
func bareID(raw string) string {
	m := bareIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}
