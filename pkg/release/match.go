package release

import (
	"regexp"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// MatchInput is the expected identity a candidate release is checked against.
type MatchInput struct {
	Title      string
	Year       int // 0 means "no expected year" (series searches)
	IsMovie    bool
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "and": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
}

var (
	yearPattern       = regexp.MustCompile(`(?i)\b(19|20)\d{2}\b`)
	seasonEpPattern   = regexp.MustCompile(`(?i)\bS\d{1,2}E\d{1,3}\b`)
	seasonOnlyPattern = regexp.MustCompile(`(?i)\bS\d{1,2}\b`)
	nxnnPattern       = regexp.MustCompile(`(?i)\b\d{1,2}x\d{2,3}\b`)
	seasonWordPattern = regexp.MustCompile(`(?i)\bSeason\s+\d{1,2}\b`)
	completePattern   = regexp.MustCompile(`(?i)\bComplete\s+Series\b`)
	miniSeriesPattern = regexp.MustCompile(`(?i)\bMini-?Series\b`)
	resolutionPattern = regexp.MustCompile(`(?i)\b(2160p|1080p|720p|480p)\b`)
	sourcePattern     = regexp.MustCompile(`(?i)\b(remux|bluray|blu-ray|webdl|web-dl|webrip|web-rip|web|hdtv|dvdrip|dvd|sdtv)\b`)
	nonWordPattern    = regexp.MustCompile(`[^a-z0-9\s]+`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// Matcher applies the strict title/year/TV-shape acceptance rules to a
// release title, independent of rls's own structural parse.
type Matcher struct {
	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// NewMatcher returns a Matcher using the real clock.
func NewMatcher() *Matcher {
	return &Matcher{Now: time.Now}
}

// Matches reports whether releaseTitle is an acceptable candidate for the
// expected media identity.
func (m *Matcher) Matches(expected MatchInput, releaseTitle string) bool {
	if expected.IsMovie && hasTVShape(releaseTitle) {
		return false
	}

	releaseWords := contentWordTokens(releaseTitle)
	if len(releaseWords) == 0 {
		return false
	}

	expectedWords := tokenize(expected.Title)
	expectedContent := filterContent(expectedWords)
	if len(expectedContent) == 0 {
		return false
	}

	if !m.matchesWords(expectedContent, releaseWords) {
		return false
	}

	if expected.IsMovie && expected.Year > 0 {
		return m.matchesYear(expected.Year, releaseTitle)
	}

	return true
}

func (m *Matcher) matchesWords(expectedContent, releaseWords []string) bool {
	matched := 0
	releaseSet := make(map[string]int, len(releaseWords))
	for i, w := range releaseWords {
		if _, ok := releaseSet[w]; !ok {
			releaseSet[w] = i
		}
	}

	firstMatchPos := -1
	for _, w := range expectedContent {
		pos, ok := releaseSet[w]
		if !ok {
			pos, ok = nearMatch(w, releaseWords)
		}
		if ok {
			matched++
			if firstMatchPos == -1 || pos < firstMatchPos {
				firstMatchPos = pos
			}
		}
	}

	if matched == 0 {
		return false
	}

	ratio := float64(matched) / float64(len(expectedContent))
	if ratio < 0.8 {
		return false
	}

	allowedPos := 2
	if len(expectedContent) <= 2 {
		allowedPos = 1
	}
	if firstMatchPos < 0 || firstMatchPos > allowedPos {
		return false
	}

	extra := len(releaseWords) - matched
	maxExtra := maxInt(2, matched/2)
	if len(expectedContent) <= 2 {
		maxExtra = 1
	}
	return extra <= maxExtra
}

func (m *Matcher) matchesYear(expectedYear int, releaseTitle string) bool {
	match := yearPattern.FindString(releaseTitle)
	if match == "" {
		now := time.Now
		if m.Now != nil {
			now = m.Now
		}
		return expectedYear < now().Year()
	}

	var releaseYear int
	for _, c := range match {
		releaseYear = releaseYear*10 + int(c-'0')
	}

	diff := releaseYear - expectedYear
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

func hasTVShape(title string) bool {
	return seasonEpPattern.MatchString(title) ||
		seasonWordPattern.MatchString(title) ||
		nxnnPattern.MatchString(title) ||
		completePattern.MatchString(title) ||
		miniSeriesPattern.MatchString(title) ||
		seasonOnlyPattern.MatchString(title)
}

// contentWordTokens extracts the portion of the release title before the
// first year, SxxEyy, resolution, or source token, then tokenizes it.
func contentWordTokens(releaseTitle string) []string {
	cut := len(releaseTitle)
	for _, re := range []*regexp.Regexp{yearPattern, seasonEpPattern, seasonOnlyPattern, resolutionPattern, sourcePattern} {
		if loc := re.FindStringIndex(releaseTitle); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}

	return tokenize(releaseTitle[:cut])
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "a.i.", "ai")
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = nonWordPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func filterContent(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if articles[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// nearMatch finds a release word one edit away from w. Scene releases
// routinely carry minor spelling drift (colour/color, transliterated
// names); a single-edit tolerance absorbs that without letting short
// words blur into each other.
func nearMatch(w string, releaseWords []string) (int, bool) {
	if len(w) < 5 {
		return 0, false
	}
	for i, rw := range releaseWords {
		if len(rw) < 5 {
			continue
		}
		if levenshtein.ComputeDistance(w, rw) <= 1 {
			return i, true
		}
	}
	return 0, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
