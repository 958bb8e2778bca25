package library

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// EpisodeFile is one video file discovered in (or moved into) the TV
// library.
type EpisodeFile struct {
	Name         string `json:"name"`
	RelativePath string `json:"path"`
	AbsolutePath string `json:"absolutePath"`
	Size         int64  `json:"size"`
	SeriesTitle  string `json:"seriesTitle"`
	Season       int32  `json:"season"`
}

func (ef EpisodeFile) String() string {
	return fmt.Sprintf("name: %s, series: %s, season: %d, relative path: %s, size in bytes: %d",
		ef.Name, ef.SeriesTitle, ef.Season, ef.RelativePath, ef.Size)
}

var seasonDirPattern = regexp.MustCompile(`(?i)^Season\s+(\d{1,2})$`)

// EpisodeFileFromPath builds an EpisodeFile from a path relative to the TV
// library root, shaped "<Series>/Season NN/<file>". A file directly under
// the series folder (no season directory) reports season 0.
func EpisodeFileFromPath(path string) EpisodeFile {
	e := EpisodeFile{
		Name:         sanitizeName(filepath.Base(path)),
		RelativePath: path,
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 0 {
		e.SeriesTitle = titleCase(sanitizeName(parts[0]))
	}
	if len(parts) > 2 {
		if m := seasonDirPattern.FindStringSubmatch(parts[1]); m != nil {
			n, err := strconv.ParseInt(m[1], 10, 32)
			if err == nil {
				e.Season = int32(n)
			}
		}
	}
	return e
}
