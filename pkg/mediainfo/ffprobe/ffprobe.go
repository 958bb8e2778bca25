// Package ffprobe implements mediainfo.Probe by shelling out to ffprobe
// and parsing its JSON output.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/reelforge/reelforge/pkg/mediainfo"
)

// Prober runs ffprobe against media files on disk.
type Prober struct {
	binaryPath string
	timeout    time.Duration
}

var _ mediainfo.Probe = (*Prober)(nil)

// New builds a Prober. binaryPath defaults to "ffprobe" (resolved via
// PATH at exec time) when empty.
func New(binaryPath string) *Prober {
	if binaryPath == "" {
		binaryPath = "ffprobe"
	}
	return &Prober{binaryPath: binaryPath, timeout: 30 * time.Second}
}

// Probe runs ffprobe on path and layers its findings over the
// filename-derived quality/resolution/release-group guess.
func (p *Prober) Probe(ctx context.Context, path string) (mediainfo.Info, error) {
	base := mediainfo.FilenameOnly(path)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binaryPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return mediainfo.Info{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	probed, err := parse(stdout.Bytes())
	if err != nil {
		return mediainfo.Info{}, err
	}

	return mediainfo.Merge(base, probed), nil
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType      string          `json:"codec_type"`
	CodecName      string          `json:"codec_name"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	PixFmt         string          `json:"pix_fmt"`
	ColorPrimaries string          `json:"color_primaries"`
	ColorTransfer  string          `json:"color_transfer"`
	ColorSpace     string          `json:"color_space"`
	Channels       int             `json:"channels"`
	ChannelLayout  string          `json:"channel_layout"`
	Tags           ffprobeTags     `json:"tags"`
	SideDataList   []ffprobeSideData `json:"side_data_list"`
}

type ffprobeTags struct {
	Language string `json:"language"`
}

type ffprobeSideData struct {
	SideDataType string `json:"side_data_type"`
}

func parse(data []byte) (mediainfo.Info, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return mediainfo.Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := mediainfo.Info{}
	var audioLangs, subLangs []string
	var sawVideo, sawAudio bool

	if output.Format.Duration != "" {
		if f, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			info.DurationSec = int64(f)
		}
	}

	for _, stream := range output.Streams {
		switch stream.CodecType {
		case "video":
			if sawVideo {
				continue
			}
			sawVideo = true

			info.VideoCodec = normalizeVideoCodec(stream.CodecName)
			if stream.Width > 0 && stream.Height > 0 {
				info.Resolution = resolutionLabel(stream.Height)
			}

			hdr := hdrSignals{
				bitDepth:       detectBitDepth(stream.PixFmt),
				colorPrimaries: stream.ColorPrimaries,
				transferFunc:   stream.ColorTransfer,
				colorSpace:     stream.ColorSpace,
			}
			for _, sd := range stream.SideDataList {
				if strings.Contains(strings.ToLower(sd.SideDataType), "dolby vision") {
					hdr.dolbyVision = true
				}
			}
			info.DynamicRange = detectDynamicRange(hdr)

		case "audio":
			if !sawAudio {
				sawAudio = true
				info.AudioCodec = normalizeAudioCodec(stream.CodecName)
				info.AudioChannels = formatChannels(stream.Channels, stream.ChannelLayout)
			}
			if lang := normalizeLanguage(stream.Tags.Language); lang != "" {
				audioLangs = appendUnique(audioLangs, lang)
			}

		case "subtitle":
			if lang := normalizeLanguage(stream.Tags.Language); lang != "" {
				subLangs = appendUnique(subLangs, lang)
			}
		}
	}

	info.AudioLanguages = audioLangs
	info.SubtitleLanguages = subLangs
	return info, nil
}

func resolutionLabel(height int) string {
	switch {
	case height >= 2000:
		return "2160p"
	case height >= 1000:
		return "1080p"
	case height >= 700:
		return "720p"
	case height > 0:
		return "480p"
	default:
		return ""
	}
}

var videoCodecMap = map[string]string{
	"hevc": "HEVC", "h265": "HEVC", "h264": "H.264", "avc": "H.264",
	"av1": "AV1", "vp9": "VP9", "mpeg2video": "MPEG2", "vc1": "VC-1",
}

func normalizeVideoCodec(codec string) string {
	lower := strings.ToLower(strings.TrimSpace(codec))
	if v, ok := videoCodecMap[lower]; ok {
		return v
	}
	return codec
}

var audioCodecMap = map[string]string{
	"dts": "DTS", "truehd": "TrueHD", "eac3": "EAC3", "ac3": "AC3",
	"aac": "AAC", "flac": "FLAC", "opus": "Opus", "mp3": "MP3", "pcm_s16le": "PCM",
}

func normalizeAudioCodec(codec string) string {
	lower := strings.ToLower(strings.TrimSpace(codec))
	if v, ok := audioCodecMap[lower]; ok {
		return v
	}
	return codec
}

func formatChannels(channels int, layout string) string {
	lower := strings.ToLower(layout)
	switch {
	case strings.Contains(lower, "7.1"):
		return "7.1"
	case strings.Contains(lower, "5.1"):
		return "5.1"
	case strings.Contains(lower, "stereo"):
		return "2.0"
	case strings.Contains(lower, "mono"):
		return "1.0"
	}

	switch {
	case channels >= 8:
		return "7.1"
	case channels >= 6:
		return "5.1"
	case channels >= 2:
		return "2.0"
	case channels == 1:
		return "1.0"
	default:
		return ""
	}
}

func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || lang == "und" {
		return ""
	}
	if len(lang) > 3 {
		lang = lang[:3]
	}
	return strings.ToUpper(lang)
}

func appendUnique(slice []string, value string) []string {
	for _, v := range slice {
		if v == value {
			return slice
		}
	}
	return append(slice, value)
}

func detectBitDepth(pixFmt string) int {
	lower := strings.ToLower(pixFmt)
	switch {
	case strings.Contains(lower, "10le"), strings.Contains(lower, "10be"), strings.Contains(lower, "p010"):
		return 10
	case strings.Contains(lower, "12le"), strings.Contains(lower, "12be"):
		return 12
	default:
		return 8
	}
}

type hdrSignals struct {
	bitDepth       int
	colorPrimaries string
	transferFunc   string
	colorSpace     string
	dolbyVision    bool
}

// detectDynamicRange follows the same PQ+BT.2020/HLG/Dolby Vision signal
// checks as a typical media-analysis pipeline: Dolby Vision side data wins,
// then a PQ transfer function with BT.2020 primaries reads as HDR10, then
// HLG, then a bare 10-bit BT.2020 stream still counts as HDR.
func detectDynamicRange(h hdrSignals) string {
	lower := strings.ToLower(h.colorPrimaries + " " + h.transferFunc + " " + h.colorSpace)
	isBT2020 := strings.Contains(lower, "bt2020") || strings.Contains(lower, "bt.2020")

	switch {
	case h.dolbyVision:
		return "DV"
	case strings.Contains(lower, "smpte2084") || strings.Contains(lower, "smpte st 2084"):
		if isBT2020 {
			return "HDR10"
		}
		return "HDR"
	case strings.Contains(lower, "arib-std-b67") || strings.Contains(lower, "hlg"):
		return "HLG"
	case h.bitDepth >= 10 && isBT2020:
		return "HDR"
	default:
		return ""
	}
}
