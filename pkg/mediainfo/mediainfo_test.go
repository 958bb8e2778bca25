package mediainfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelforge/reelforge/pkg/mediainfo"
)

func TestFilenameOnly_DerivesQualityResolutionAndGroup(t *testing.T) {
	info := mediainfo.FilenameOnly("The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")
	assert.Equal(t, "1080p", info.Resolution)
	assert.Equal(t, "GROUP", info.ReleaseGroup)
	assert.NotEmpty(t, info.Quality)
	assert.Empty(t, info.VideoCodec)
}

func TestMerge_ProbedValuesWinOverFilenameGuess(t *testing.T) {
	base := mediainfo.Info{Resolution: "720p", ReleaseGroup: "GROUP"}
	probed := mediainfo.Info{
		VideoCodec:     "HEVC",
		AudioCodec:     "DTS",
		Resolution:     "1080p",
		DynamicRange:   "HDR10",
		AudioLanguages: []string{"ENG"},
		DurationSec:    3600,
	}

	merged := mediainfo.Merge(base, probed)
	assert.Equal(t, "1080p", merged.Resolution)
	assert.Equal(t, "HEVC", merged.VideoCodec)
	assert.Equal(t, "DTS", merged.AudioCodec)
	assert.Equal(t, "HDR10", merged.DynamicRange)
	assert.Equal(t, []string{"ENG"}, merged.AudioLanguages)
	assert.Equal(t, int64(3600), merged.DurationSec)
	assert.Equal(t, "GROUP", merged.ReleaseGroup, "filename-only fields survive when the probe doesn't set them")
}

func TestMerge_KeepsBaseWhenProbeFindsNothing(t *testing.T) {
	base := mediainfo.Info{Resolution: "1080p", Quality: "WEBDL-1080p", ReleaseGroup: "GROUP"}
	merged := mediainfo.Merge(base, mediainfo.Info{})
	assert.Equal(t, base, merged)
}
