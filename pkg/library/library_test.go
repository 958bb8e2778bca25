package library

import (
	"context"
	"testing"
	"testing/fstest"

	libio "github.com/reelforge/reelforge/pkg/io"
)

func testMovieFS() fstest.MapFS {
	return fstest.MapFS{
		"Batman Begins (2005)/Batman.Begins.2005.1080p.BluRay.mkv": &fstest.MapFile{},
		"Arrival (2016)/Arrival.2016.2160p.WEB-DL.mp4":             &fstest.MapFile{},
		// negatives: wrong nesting, wrong extension
		"myfile.txt": &fstest.MapFile{},
		"Batman Begins (2005)/Batman Begins (2005).en.srt": &fstest.MapFile{},
		"My Movie/Uh Oh/My Movie.mp4":                      &fstest.MapFile{},
	}
}

func testTVFS() fstest.MapFS {
	return fstest.MapFS{
		"The Office (2005)/Season 02/The Office - S02E05 - Halloween.mkv": &fstest.MapFile{},
		"The Office (2005)/Season 02/The Office - S02E06.mkv":             &fstest.MapFile{},
		"myfile.txt": &fstest.MapFile{},
	}
}

func newTestLibrary(movies, tv fstest.MapFS) Library {
	return New(
		FileSystem{FS: movies, Path: "/library/movies"},
		FileSystem{FS: tv, Path: "/library/tv"},
		&libio.MediaFileSystem{},
	)
}

func TestMatchMovie(t *testing.T) {
	for _, name := range []string{
		"Batman Begins (2005)",
		"Arrival (2016)",
		"Heat",
	} {
		if !matchMovie(name) {
			t.Errorf("didn't match movie: %s", name)
		}
	}
}

func TestMatchEpisode(t *testing.T) {
	for _, name := range []string{
		"The Office - S02E05 - Halloween.mkv",
		"The Office - S02E06.mkv",
	} {
		if !matchEpisode(name) {
			t.Errorf("didn't match episode: %s", name)
		}
	}
}

func TestFindMovies(t *testing.T) {
	l := newTestLibrary(testMovieFS(), testTVFS())

	movies, err := l.FindMovies(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	names := make(map[string]bool, len(movies))
	for _, m := range movies {
		names[m.Name] = true
	}
	if len(movies) != 2 {
		t.Fatalf("wanted 2 movies; got %d (%v)", len(movies), names)
	}
	if !names["Batman.Begins.2005.1080p.BluRay.mkv"] || !names["Arrival.2016.2160p.WEB-DL.mp4"] {
		t.Fatalf("unexpected movie set: %v", names)
	}
}

func TestFindEpisodes(t *testing.T) {
	l := newTestLibrary(testMovieFS(), testTVFS())

	episodes, err := l.FindEpisodes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(episodes) != 2 {
		t.Fatalf("wanted 2 episodes; got %d", len(episodes))
	}
	for _, e := range episodes {
		if e.SeriesTitle != "The Office (2005)" {
			t.Errorf("series title: got %q", e.SeriesTitle)
		}
		if e.Season != 2 {
			t.Errorf("season: got %d", e.Season)
		}
	}
}

func TestMovieFileFromPath(t *testing.T) {
	m := MovieFileFromPath("Batman Begins (2005)/Batman.Begins.2005.1080p.BluRay.mkv")
	if m.Name != "Batman.Begins.2005.1080p.BluRay.mkv" {
		t.Errorf("name: got %q", m.Name)
	}
	if m.Title != "Batman Begins (2005)" {
		t.Errorf("title: got %q", m.Title)
	}
}

func TestEpisodeFileFromPath(t *testing.T) {
	e := EpisodeFileFromPath("The Office (2005)/Season 02/The Office - S02E05 - Halloween.mkv")
	if e.Name != "The Office - S02E05 - Halloween.mkv" {
		t.Errorf("name: got %q", e.Name)
	}
	if e.SeriesTitle != "The Office (2005)" {
		t.Errorf("series: got %q", e.SeriesTitle)
	}
	if e.Season != 2 {
		t.Errorf("season: got %d", e.Season)
	}

	flat := EpisodeFileFromPath("The Office (2005)/The Office - Special.mkv")
	if flat.Season != 0 {
		t.Errorf("flat file should report season 0, got %d", flat.Season)
	}
}
