// Package mediainfo defines the MediaInfoProbe capability contract and a
// default implementation that shells out to ffprobe, falling back to the
// release title's own filename tokens for the fields ffprobe can't see
// (quality label, release group).
package mediainfo

import (
	"context"
	"path/filepath"

	"github.com/reelforge/reelforge/pkg/release"
)

// Info is the result of probing one media file.
type Info struct {
	Quality           string
	Resolution        string
	VideoCodec        string
	AudioCodec        string
	AudioChannels     string
	AudioLanguages    []string
	SubtitleLanguages []string
	DynamicRange      string
	ReleaseGroup      string
	DurationSec       int64
}

// Probe is the capability an external media-analysis tool exposes.
type Probe interface {
	Probe(ctx context.Context, path string) (Info, error)
}

// FilenameOnly fills Quality, Resolution, and ReleaseGroup from the
// filename's own release tokens, leaving the media-stream fields (codecs,
// channels, languages, dynamic range, duration) zero-valued. A concrete
// Probe implementation calls this first and layers the real probe's
// stream-level findings on top, so a file that can't be shelled out to
// (or that fails to probe) still yields a usable quality/group guess.
func FilenameOnly(path string) Info {
	p := release.Parse(filepath.Base(path))
	return Info{
		Quality:      release.Quality(p),
		Resolution:   p.Resolution,
		ReleaseGroup: p.Group,
	}
}

// Merge layers probed stream-level fields over the filename-derived base,
// preferring the probe's values wherever it found one. A concrete Probe
// implementation calls FilenameOnly for its base, probes the file, and
// merges the two before returning.
func Merge(base Info, probed Info) Info {
	if probed.VideoCodec != "" {
		base.VideoCodec = probed.VideoCodec
	}
	if probed.AudioCodec != "" {
		base.AudioCodec = probed.AudioCodec
	}
	if probed.AudioChannels != "" {
		base.AudioChannels = probed.AudioChannels
	}
	if len(probed.AudioLanguages) > 0 {
		base.AudioLanguages = probed.AudioLanguages
	}
	if len(probed.SubtitleLanguages) > 0 {
		base.SubtitleLanguages = probed.SubtitleLanguages
	}
	if probed.DynamicRange != "" {
		base.DynamicRange = probed.DynamicRange
	}
	if probed.Resolution != "" {
		base.Resolution = probed.Resolution
	}
	if probed.DurationSec > 0 {
		base.DurationSec = probed.DurationSec
	}
	return base
}
