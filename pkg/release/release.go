// Package release parses and matches release titles against a catalog item.
package release

import (
	"regexp"
	"strings"

	"github.com/moistari/rls"
)

// Parsed is the structural breakdown of a release title, insulating the rest
// of the codebase from the exact shape of the underlying rls.Release.
type Parsed struct {
	Title      string
	Year       int
	Season     int
	Episode    int
	IsSeason   bool // season-pack: season set, episode not
	Resolution string
	Source     string
	Codec      string
	Group      string
	Raw        rls.Release
}

// Parse delegates structural tokenization to moistari/rls and normalizes the
// handful of fields the rest of the package needs.
func Parse(title string) Parsed {
	r := rls.ParseString(title)

	p := Parsed{
		Title:      r.Title,
		Year:       r.Year,
		Season:     r.Series,
		Episode:    r.Episode,
		Resolution: r.Resolution,
		Source:     r.Source,
		Codec:      firstOrZero(r.Codec),
		Group:      r.Group,
		Raw:        r,
	}
	p.IsSeason = p.Season > 0 && p.Episode == 0

	return p
}

func firstOrZero(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

var properRepackPattern = regexp.MustCompile(`(?i)\b(proper|repack|rerip)\b`)

// IsProperOrRepack reports whether a release title or stored file path
// carries a PROPER/REPACK/RERIP marker.
func IsProperOrRepack(s string) bool {
	return properRepackPattern.MatchString(s)
}

// Quality composes the "<source>-<resolution>" label used as the quality
// string throughout the catalog. Precedence:
// low-quality cam/telesync/telecine/screener sources are returned bare,
// everything else is composed with a resolution (default 1080p).
func Quality(p Parsed) string {
	if label, ok := lowQualitySourceLabel(p.Source); ok {
		return label
	}

	source := normalizeSource(p.Source)
	resolution := p.Resolution
	if resolution == "" {
		resolution = "1080p"
	}

	return source + "-" + resolution
}

var lowQualitySources = map[string]string{
	"workprint": "WORKPRINT",
	"cam":       "CAM",
	"hdcam":     "CAM",
	"ts":        "TELESYNC",
	"telesync":  "TELESYNC",
	"hdts":      "TELESYNC",
	"pdvd":      "TELESYNC",
	"tc":        "TELECINE",
	"telecine":  "TELECINE",
	"hdtc":      "TELECINE",
	"dvdscr":    "SCREENER",
	"screener":  "SCREENER",
	"scr":       "SCREENER",
	"regional":  "REGIONAL",
}

func lowQualitySourceLabel(source string) (string, bool) {
	label, ok := lowQualitySources[strings.ToLower(source)]
	return label, ok
}

func normalizeSource(source string) string {
	switch strings.ToLower(source) {
	case "remux":
		return "Remux"
	case "bluray", "blu-ray", "bdrip":
		return "Bluray"
	case "webdl", "web-dl":
		return "WEBDL"
	case "webrip", "web-rip":
		return "WEBRip"
	case "web":
		return "WEB"
	case "hdtv":
		return "HDTV"
	case "dvd", "dvdrip":
		return "DVD"
	case "sdtv", "tv":
		return "SDTV"
	default:
		if source == "" {
			return "SDTV"
		}
		return source
	}
}
