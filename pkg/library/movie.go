package library

import (
	"path/filepath"
)

// MovieFile is one video file discovered in (or moved into) the movie
// library.
type MovieFile struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	RelativePath string `json:"path"`
	AbsolutePath string `json:"absolutePath"`
	Size         int64  `json:"size"`
}

// MovieFileFromPath builds a MovieFile from a path relative to the movie
// library root. The display title comes from the containing directory,
// since that's the canonical "<Title> (<Year>)" folder.
func MovieFileFromPath(path string) MovieFile {
	return MovieFile{
		Name:         sanitizeName(filepath.Base(path)),
		Title:        titleCase(MovieNameFromFilepath(path)),
		RelativePath: path,
	}
}

func (mf MovieFile) String() string {
	return mf.RelativePath
}
