package quality

import (
	"regexp"
	"strings"
)

// Table resolves a quality name to its weight, backed by the persisted
// quality_definition rows (loaded once at startup, refreshed on write).
type Table struct {
	byName map[string]int
	defs   []Definition
}

// NewTable builds a weight lookup table from the ordered quality definitions.
func NewTable(defs []Definition) *Table {
	t := &Table{
		byName: make(map[string]int, len(defs)),
		defs:   defs,
	}
	for _, d := range defs {
		t.byName[strings.ToLower(d.Name)] = d.Weight
	}
	return t
}

var resolutionPattern = regexp.MustCompile(`(?i)(2160p|1080p|720p|480p)`)

// Weight resolves a quality string to its ordering weight. Direct name match
// first; otherwise it extracts a resolution token (normalizing "4K" to
// 2160p) and picks the minimum weight among definitions sharing that
// resolution -- the conservative choice when the exact tier is unknown.
func (t *Table) Weight(quality string) (int, bool) {
	if w, ok := t.byName[strings.ToLower(quality)]; ok {
		return w, true
	}

	resolution := extractResolution(quality)
	if resolution == "" {
		return 0, false
	}

	var min int
	found := false
	for _, d := range t.defs {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(resolution)) ||
			strings.EqualFold(d.Resolution, resolution) {
			if !found || d.Weight < min {
				min = d.Weight
				found = true
			}
		}
	}

	return min, found
}

func extractResolution(quality string) string {
	q := strings.ToLower(quality)
	if strings.Contains(q, "4k") {
		return "2160p"
	}
	return resolutionPattern.FindString(quality)
}

// Group normalizes a quality name into its coarser family, e.g.
// "WEBDL-1080p" and "WEBRip-1080p" both become "WEB-1080p". Used when a
// direct match against a profile's allowed items fails.
func Group(quality string) string {
	resolution := extractResolution(quality)
	if resolution == "" {
		return quality
	}

	lower := strings.ToLower(quality)
	switch {
	case strings.Contains(lower, "webdl"), strings.Contains(lower, "web-dl"),
		strings.Contains(lower, "webrip"), strings.Contains(lower, "web-rip"),
		strings.HasPrefix(lower, "web"):
		return "WEB-" + resolution
	default:
		return quality
	}
}
