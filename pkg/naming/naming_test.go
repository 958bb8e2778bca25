package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelforge/reelforge/pkg/mediainfo"
	"github.com/reelforge/reelforge/pkg/naming"
	"github.com/reelforge/reelforge/pkg/store"
)

func testConfig() store.NamingConfig {
	return store.NamingConfig{
		MovieFileFormat:       "{Movie Title} ({Release Year}) {Quality Full}",
		MovieFolderFormat:     "{Movie Title} ({Release Year})",
		StandardEpisodeFormat: "{Series Title} - S{season:00}E{episode:00} - {Episode Title}",
		SeriesFolderFormat:    "{Series Title} ({Release Year})",
		SeasonFolderFormat:    "Season {season:00}",
		SpecialsFolderFormat:  "Specials",
		ColonReplacement:      " -",
	}
}

func TestMovieFilename(t *testing.T) {
	e := naming.New(testConfig())
	info := mediainfo.Info{Quality: "WEBDL-1080p", Resolution: "1080p"}
	name := e.MovieFilename(naming.MovieInfo{Title: "Arrival", Year: 2016}, info, ".mkv")
	assert.Equal(t, "Arrival (2016) 1080p WEBDL-1080p.mkv", name)
}

func TestMovieFolderPath(t *testing.T) {
	e := naming.New(testConfig())
	path := e.MovieFolderPath(naming.MovieInfo{Title: "Arrival", Year: 2016})
	assert.Equal(t, "Arrival (2016)", path)
}

func TestEpisodeFilename_PadsSeasonAndEpisode(t *testing.T) {
	e := naming.New(testConfig())
	ep := naming.EpisodeInfo{
		Series:        naming.SeriesInfo{Title: "The Office", Year: 2005},
		SeasonNumber:  2,
		EpisodeNumber: 5,
		Title:         "Halloween",
	}
	name := e.EpisodeFilename(ep, mediainfo.Info{}, "standard", ".mkv")
	assert.Equal(t, "The Office - S02E05 - Halloween.mkv", name)
}

func TestSeasonFolderName_UsesSpecialsForZero(t *testing.T) {
	e := naming.New(testConfig())
	assert.Equal(t, "Specials", e.SeasonFolderName(0))
	assert.Equal(t, "Season 03", e.SeasonFolderName(3))
}

func TestRender_LeavesUnknownTokenLiteral(t *testing.T) {
	cfg := testConfig()
	cfg.MovieFileFormat = "{Movie Title} {Not A Real Token}"
	e := naming.New(cfg)
	name := e.MovieFilename(naming.MovieInfo{Title: "Arrival", Year: 2016}, mediainfo.Info{}, ".mkv")
	assert.Equal(t, "Arrival {Not A Real Token}.mkv", name)
}

func TestRender_AppliesColonReplacement(t *testing.T) {
	cfg := testConfig()
	cfg.MovieFileFormat = "{Movie Title}: Director's Cut"
	e := naming.New(cfg)
	name := e.MovieFilename(naming.MovieInfo{Title: "Arrival", Year: 2016}, mediainfo.Info{}, ".mkv")
	assert.Equal(t, "Arrival - Director's Cut.mkv", name)
}

func TestMultiEpisodeLabel(t *testing.T) {
	episodes := []int32{1, 2, 3}
	tests := []struct {
		style string
		want  string
	}{
		{"extend", "S01E01E02E03"},
		{"duplicate", "S01E01 S01E02 S01E03"},
		{"prefixed_range", "S01E01-E03"},
		{"range", "S01E01-03"},
		{"scene", "1x01-1x03"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			e := naming.New(store.NamingConfig{MultiEpisodeStyle: tt.style})
			assert.Equal(t, tt.want, e.MultiEpisodeLabel(1, episodes))
		})
	}
}

func TestMultiEpisodeLabel_SingleEpisodeIgnoresStyle(t *testing.T) {
	e := naming.New(store.NamingConfig{MultiEpisodeStyle: "scene"})
	assert.Equal(t, "S04E07", e.MultiEpisodeLabel(4, []int32{7}))
}

func TestMovieFilename_SanitizesIllegalCharacters(t *testing.T) {
	e := naming.New(store.NamingConfig{MovieFileFormat: "{Movie Title}"})
	name := e.MovieFilename(naming.MovieInfo{Title: `What? A "Movie" <Test>`}, mediainfo.Info{}, ".mkv")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, `"`)
	assert.NotContains(t, name, "<")

	// Sanitization is idempotent: a clean name passes through unchanged.
	again := e.MovieFilename(naming.MovieInfo{Title: name[:len(name)-len(".mkv")]}, mediainfo.Info{}, ".mkv")
	assert.Equal(t, name, again)
}

func TestTitleThe(t *testing.T) {
	e := naming.New(store.NamingConfig{MovieFileFormat: "{Movie TitleThe}"})
	name := e.MovieFilename(naming.MovieInfo{Title: "The Matrix"}, mediainfo.Info{}, ".mkv")
	assert.Equal(t, "Matrix, The.mkv", name)
}
