// Package probe reads media metadata through ffprobe. One JSON call per
// file returns the container format and stream layout; the compiler only
// consumes the duration, the inspect surface shows the rest.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Static errors for probe operations.
var (
	// ErrExecution is returned when the ffprobe command fails.
	ErrExecution = errors.New("ffprobe execution failed")
	// ErrNoDuration is returned when the container metadata carries no
	// usable duration.
	ErrNoDuration = errors.New("no container duration")
)

// Result is the parsed metadata of one media file.
type Result struct {
	Format Format        `json:"format"`
	Video  []VideoStream `json:"video,omitempty"`
	Audio  []AudioStream `json:"audio,omitempty"`
}

// Format is the container-level metadata.
type Format struct {
	Filename   string  `json:"filename"`
	FormatName string  `json:"format_name"`
	Duration   float64 `json:"duration"`
	Size       int64   `json:"size"`
	BitRate    int64   `json:"bit_rate"`
}

// VideoStream summarizes one playable video stream.
type VideoStream struct {
	Index        int    `json:"index"`
	Codec        string `json:"codec"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixFmt       string `json:"pix_fmt,omitempty"`
	AvgFrameRate string `json:"avg_frame_rate,omitempty"`
}

// AudioStream summarizes one audio stream.
type AudioStream struct {
	Index         int    `json:"index"`
	Codec         string `json:"codec"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout,omitempty"`
	SampleRate    int    `json:"sample_rate"`
}

// FFProbe runs the ffprobe binary.
type FFProbe struct {
	// binPath is the path to the ffprobe binary. Defaults to "ffprobe".
	binPath string
}

// New creates an FFProbe. If binPath is empty, it defaults to "ffprobe"
// (found via PATH).
func New(binPath string) *FFProbe {
	if binPath == "" {
		binPath = "ffprobe"
	}
	return &FFProbe{binPath: binPath}
}

// Inspect runs a single ffprobe JSON call against path and returns the
// parsed result.
func (p *FFProbe) Inspect(ctx context.Context, path string) (*Result, error) {
	// #nosec G204 - binPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, p.binPath,
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w, stderr: %s", ErrExecution, err, stderr.String())
	}

	return ParseJSON(stdout.Bytes())
}

// Duration reports the container-level duration of path in seconds.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	res, err := p.Inspect(ctx, path)
	if err != nil {
		return 0, err
	}
	if res.Format.Duration <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoDuration, path)
	}
	return res.Format.Duration, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result. Exported so
// tests can run without an ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	res := &Result{
		Format: Format{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			BitRate:    parseInt64(raw.Format.BitRate),
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			// Cover art rides along as a video stream; it is not
			// playable footage.
			if s.Disposition["attached_pic"] == 1 {
				continue
			}
			res.Video = append(res.Video, VideoStream{
				Index:        s.Index,
				Codec:        s.CodecName,
				Width:        s.Width,
				Height:       s.Height,
				PixFmt:       s.PixFmt,
				AvgFrameRate: s.AvgFrameRate,
			})
		case "audio":
			res.Audio = append(res.Audio, AudioStream{
				Index:         s.Index,
				Codec:         s.CodecName,
				Channels:      s.Channels,
				ChannelLayout: s.ChannelLayout,
				SampleRate:    parseInt(s.SampleRate),
			})
		}
	}

	return res, nil
}

// ffprobe JSON wire types; numbers arrive as strings.

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index         int            `json:"index"`
	CodecName     string         `json:"codec_name"`
	CodecType     string         `json:"codec_type"`
	PixFmt        string         `json:"pix_fmt"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	AvgFrameRate  string         `json:"avg_frame_rate"`
	Channels      int            `json:"channels"`
	ChannelLayout string         `json:"channel_layout"`
	SampleRate    string         `json:"sample_rate"`
	Disposition   map[string]int `json:"disposition"`
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
