package ffprobe_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/mediainfo/ffprobe"
)

// fakeFFprobe writes an executable shell script at a temp path that prints
// json to stdout regardless of its arguments, standing in for a real
// ffprobe binary the way the CLI-shelling tests in the pack avoid
// depending on the real tool being installed.
func fakeFFprobe(t *testing.T, json string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffprobe script requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "ffprobe")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", json)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

const sampleJSON = `{
  "format": {"duration": "7260.5"},
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "hevc",
      "width": 3840,
      "height": 2160,
      "pix_fmt": "yuv420p10le",
      "color_primaries": "bt2020",
      "color_transfer": "smpte2084",
      "color_space": "bt2020nc"
    },
    {
      "codec_type": "audio",
      "codec_name": "dts",
      "channels": 6,
      "channel_layout": "5.1",
      "tags": {"language": "eng"}
    },
    {
      "codec_type": "subtitle",
      "tags": {"language": "spa"}
    }
  ]
}`

func TestProbe_ParsesStreamsAndMergesOverFilename(t *testing.T) {
	binary := fakeFFprobe(t, sampleJSON)
	prober := ffprobe.New(binary)

	info, err := prober.Probe(context.Background(), "/movies/The.Matrix.1999.2160p.BluRay.x264-GROUP.mkv")
	require.NoError(t, err)

	assert.Equal(t, "HEVC", info.VideoCodec)
	assert.Equal(t, "DTS", info.AudioCodec)
	assert.Equal(t, "5.1", info.AudioChannels)
	assert.Equal(t, []string{"ENG"}, info.AudioLanguages)
	assert.Equal(t, []string{"SPA"}, info.SubtitleLanguages)
	assert.Equal(t, "HDR10", info.DynamicRange)
	assert.Equal(t, "2160p", info.Resolution)
	assert.Equal(t, int64(7260), info.DurationSec)
	assert.Equal(t, "GROUP", info.ReleaseGroup, "filename-derived group survives the merge")
}

func TestProbe_BinaryFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ffprobe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho broken >&2\nexit 1\n"), 0o755))

	prober := ffprobe.New(path)
	_, err := prober.Probe(context.Background(), "/movies/x.mkv")
	assert.Error(t, err)
}

func TestProbe_NoDolbyVisionNoHDRSignalsYieldsEmptyDynamicRange(t *testing.T) {
	binary := fakeFFprobe(t, `{
		"format": {"duration": "120"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "pix_fmt": "yuv420p"}
		]
	}`)
	prober := ffprobe.New(binary)

	info, err := prober.Probe(context.Background(), "/movies/show.S01E01.720p.mkv")
	require.NoError(t, err)
	assert.Equal(t, "H.264", info.VideoCodec)
	assert.Empty(t, info.DynamicRange)
	assert.Equal(t, "720p", info.Resolution)
}
