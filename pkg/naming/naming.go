// Package naming implements the FileNaming token-substitution engine:
// rendering a configurable format string against a movie, series, or
// episode plus its probed media info into a final file or folder name.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/reelforge/reelforge/pkg/mediainfo"
	"github.com/reelforge/reelforge/pkg/store"
)

// Engine renders NamingConfig's format strings.
type Engine struct {
	cfg store.NamingConfig
}

// New builds an Engine from cfg.
func New(cfg store.NamingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// MovieInfo is the subset of a movie's catalog row the naming tokens need.
type MovieInfo struct {
	Title  string
	Year   int32
	TmdbID int32
	ImdbID string
}

// SeriesInfo is the subset of a series' catalog row the naming tokens need.
type SeriesInfo struct {
	Title  string
	Year   int32
	TvdbID int32
}

// EpisodeInfo is the subset of an episode's catalog row the naming tokens
// need, alongside the series it belongs to.
type EpisodeInfo struct {
	Series         SeriesInfo
	SeasonNumber   int32
	EpisodeNumber  int32
	AbsoluteNumber int32 // anime ordering; 0 when the series doesn't use it
	Title          string
	AirDate        string
}

// MovieFolderPath renders MovieFolderFormat for m.
func (e *Engine) MovieFolderPath(m MovieInfo) string {
	return e.render(e.cfg.MovieFolderFormat, e.movieTokens(m, mediainfo.Info{}))
}

// MovieFilename renders MovieFileFormat for m using info's probed quality,
// returning a sanitized name with ext preserved (ext is taken from the
// source file, since NamingConfig's format strings never carry one).
func (e *Engine) MovieFilename(m MovieInfo, info mediainfo.Info, ext string) string {
	name := e.render(e.cfg.MovieFileFormat, e.movieTokens(m, info))
	return sanitizeFilename(name) + ext
}

// SeriesFolderName renders SeriesFolderFormat for s.
func (e *Engine) SeriesFolderName(s SeriesInfo) string {
	return e.render(e.cfg.SeriesFolderFormat, e.seriesTokens(s))
}

// SeasonFolderName renders SeasonFolderFormat (or SpecialsFolderFormat for
// season 0) for one season number.
func (e *Engine) SeasonFolderName(seasonNumber int32) string {
	format := e.cfg.SeasonFolderFormat
	if seasonNumber == 0 && e.cfg.SpecialsFolderFormat != "" {
		format = e.cfg.SpecialsFolderFormat
	}
	return e.render(format, map[string]string{"season": numeric(int64(seasonNumber))})
}

// EpisodeFilename renders the episode format matching seriesType
// (standard/daily/anime) for ep using info's probed quality.
func (e *Engine) EpisodeFilename(ep EpisodeInfo, info mediainfo.Info, seriesType, ext string) string {
	format := e.cfg.StandardEpisodeFormat
	switch seriesType {
	case "daily":
		format = e.cfg.DailyEpisodeFormat
	case "anime":
		format = e.cfg.AnimeEpisodeFormat
	}
	name := e.render(format, e.episodeTokens(ep, info))
	return sanitizeFilename(name) + ext
}

func (e *Engine) movieTokens(m MovieInfo, info mediainfo.Info) map[string]string {
	tokens := mediaInfoTokens(info)
	tokens["Movie Title"] = m.Title
	tokens["Movie CleanTitle"] = cleanTitle(m.Title)
	tokens["Movie TitleThe"] = titleThe(m.Title)
	tokens["Movie Year"] = strconv.Itoa(int(m.Year))
	tokens["Release Year"] = strconv.Itoa(int(m.Year))
	tokens["tmdb-id"] = strconv.Itoa(int(m.TmdbID))
	tokens["imdb-id"] = m.ImdbID
	return tokens
}

func (e *Engine) seriesTokens(s SeriesInfo) map[string]string {
	return map[string]string{
		"Series Title":      s.Title,
		"Series CleanTitle": cleanTitle(s.Title),
		"Series TitleThe":   titleThe(s.Title),
		"Release Year":      strconv.Itoa(int(s.Year)),
		"tvdb-id":           strconv.Itoa(int(s.TvdbID)),
	}
}

func (e *Engine) episodeTokens(ep EpisodeInfo, info mediainfo.Info) map[string]string {
	tokens := mediaInfoTokens(info)
	for k, v := range e.seriesTokens(ep.Series) {
		tokens[k] = v
	}
	tokens["season"] = numeric(int64(ep.SeasonNumber))
	tokens["episode"] = numeric(int64(ep.EpisodeNumber))
	tokens["absolute"] = numeric(int64(ep.AbsoluteNumber))
	tokens["Episode Title"] = ep.Title
	tokens["Air Date"] = ep.AirDate
	tokens["Air-Date"] = ep.AirDate
	return tokens
}

// MultiEpisodeLabel renders the season/episode block for a file holding a
// run of episodes, applying the configured multi-episode style. A single
// episode always renders as plain SxxEyy regardless of style.
func (e *Engine) MultiEpisodeLabel(seasonNumber int32, episodes []int32) string {
	if len(episodes) == 0 {
		return fmt.Sprintf("S%02d", seasonNumber)
	}
	if len(episodes) == 1 {
		return fmt.Sprintf("S%02dE%02d", seasonNumber, episodes[0])
	}

	first, last := episodes[0], episodes[len(episodes)-1]
	switch e.cfg.MultiEpisodeStyle {
	case "duplicate":
		parts := make([]string, len(episodes))
		for i, ep := range episodes {
			parts[i] = fmt.Sprintf("S%02dE%02d", seasonNumber, ep)
		}
		return strings.Join(parts, " ")
	case "prefixed_range":
		return fmt.Sprintf("S%02dE%02d-E%02d", seasonNumber, first, last)
	case "range":
		return fmt.Sprintf("S%02dE%02d-%02d", seasonNumber, first, last)
	case "scene":
		return fmt.Sprintf("%dx%02d-%dx%02d", seasonNumber, first, seasonNumber, last)
	default: // extend
		label := fmt.Sprintf("S%02dE%02d", seasonNumber, first)
		for _, ep := range episodes[1:] {
			label += fmt.Sprintf("E%02d", ep)
		}
		return label
	}
}

func mediaInfoTokens(info mediainfo.Info) map[string]string {
	return map[string]string{
		"Quality Full":             strings.TrimSpace(info.Resolution + " " + info.Quality),
		"Quality Title":            info.Quality,
		"MediaInfo VideoCodec":     info.VideoCodec,
		"MediaInfo AudioCodec":     info.AudioCodec,
		"MediaInfo AudioChannels":  info.AudioChannels,
		"MediaInfo Simple":         strings.TrimSpace(info.VideoCodec + " " + info.AudioCodec),
		"MediaInfo Full":           strings.TrimSpace(fmt.Sprintf("%s %s %s", info.VideoCodec, info.AudioCodec, info.AudioChannels)),
		"Release Group":            info.ReleaseGroup,
	}
}

// tokenPattern matches "{Token Name}" and numeric tokens with width control
// such as "{season:00}", where the digit run after ':' sets zero-pad width.
var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// render substitutes every whitelisted token in format with its value from
// tokens, then applies colon replacement. A brace-delimited sequence that
// doesn't match a known token name (ignoring any ":00"-style width suffix)
// is left exactly as written rather than substituted with an empty string.
func (e *Engine) render(format string, tokens map[string]string) string {
	rendered := tokenPattern.ReplaceAllStringFunc(format, func(match string) string {
		name, width := splitWidth(match[1 : len(match)-1])
		val, ok := tokens[name]
		if !ok {
			return match
		}
		if width > 0 {
			return padNumeric(val, width)
		}
		return val
	})

	if e.cfg.ColonReplacement != "" {
		rendered = strings.ReplaceAll(rendered, ":", e.cfg.ColonReplacement)
	}
	return rendered
}

// splitWidth separates a token's name from an optional ":00"-style width
// suffix, returning the zero-count as width (0 means "no width control").
func splitWidth(token string) (name string, width int) {
	idx := strings.LastIndex(token, ":")
	if idx < 0 {
		return token, 0
	}
	suffix := token[idx+1:]
	if suffix == "" || strings.Trim(suffix, "0") != "" {
		return token, 0
	}
	return token[:idx], len(suffix)
}

func numeric(n int64) string {
	return strconv.FormatInt(n, 10)
}

func padNumeric(val string, width int) string {
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%0*d", width, n)
}

// cleanTitle strips articles and punctuation for a compact, sort-friendly
// form, the way Radarr/Sonarr's "{Movie CleanTitle}" token behaves.
func cleanTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			return r
		default:
			return -1
		}
	}, title)
	return strings.Join(strings.Fields(cleaned), "")
}

// titleThe moves a leading article to the end, e.g. "The Office" becomes
// "Office, The".
func titleThe(title string) string {
	for _, article := range []string{"The ", "A ", "An "} {
		if strings.HasPrefix(title, article) {
			return fmt.Sprintf("%s, %s", strings.TrimPrefix(title, article), strings.TrimSpace(article))
		}
	}
	return title
}

// illegalFilenameChars mirrors the cross-platform-unsafe character set
// pkg/library's own filename sanitizer rejects.
var illegalFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// sanitizeFilename replaces filesystem-illegal characters with dashes,
// collapses runs of dashes, and trims surrounding dashes and spaces,
// matching pkg/library's canonicalization so a generated name never fails
// the underlying move.
func sanitizeFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = illegalFilenameChars.ReplaceAllString(base, "-")
	for strings.Contains(base, "--") {
		base = strings.ReplaceAll(base, "--", "-")
	}
	base = strings.Trim(strings.TrimSpace(base), "-")
	return base + ext
}
