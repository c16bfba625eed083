package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Realistic ffprobe JSON for an H.264/AAC MP4 clip.
const sampleClip = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "pix_fmt": "yuv420p",
      "avg_frame_rate": "30000/1001",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "channel_layout": "stereo",
      "sample_rate": "48000",
      "disposition": { "default": 1 }
    }
  ],
  "format": {
    "filename": "/media/main.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "10.427000",
    "size": "20971520",
    "bit_rate": "16089543"
  }
}`

// MP3 track whose embedded cover art shows up as a video stream.
const sampleTrackWithCover = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mp3",
      "codec_type": "audio",
      "channels": 2,
      "channel_layout": "stereo",
      "sample_rate": "44100",
      "disposition": { "default": 0 }
    },
    {
      "index": 1,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 600,
      "pix_fmt": "yuvj420p",
      "disposition": { "default": 0, "attached_pic": 1 }
    }
  ],
  "format": {
    "filename": "/media/music.mp3",
    "format_name": "mp3",
    "duration": "181.368000",
    "size": "4350812",
    "bit_rate": "191876"
  }
}`

func TestParseJSON_Clip(t *testing.T) {
	res, err := ParseJSON([]byte(sampleClip))
	require.NoError(t, err)

	assert.Equal(t, "/media/main.mp4", res.Format.Filename)
	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", res.Format.FormatName)
	assert.InDelta(t, 10.427, res.Format.Duration, 1e-6)
	assert.Equal(t, int64(20971520), res.Format.Size)

	require.Len(t, res.Video, 1)
	assert.Equal(t, "h264", res.Video[0].Codec)
	assert.Equal(t, 1920, res.Video[0].Width)
	assert.Equal(t, 1080, res.Video[0].Height)
	assert.Equal(t, "30000/1001", res.Video[0].AvgFrameRate)

	require.Len(t, res.Audio, 1)
	assert.Equal(t, "aac", res.Audio[0].Codec)
	assert.Equal(t, 2, res.Audio[0].Channels)
	assert.Equal(t, 48000, res.Audio[0].SampleRate)
}

func TestParseJSON_SkipsCoverArt(t *testing.T) {
	res, err := ParseJSON([]byte(sampleTrackWithCover))
	require.NoError(t, err)

	assert.Empty(t, res.Video, "attached pictures are not playable video")
	require.Len(t, res.Audio, 1)
	assert.Equal(t, "mp3", res.Audio[0].Codec)
	assert.Equal(t, 44100, res.Audio[0].SampleRate)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse ffprobe JSON")
}

func TestParseJSON_EmptyDocument(t *testing.T) {
	res, err := ParseJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Zero(t, res.Format.Duration)
	assert.Empty(t, res.Video)
	assert.Empty(t, res.Audio)
}

func TestNewDefaultsBinary(t *testing.T) {
	p := New("")
	assert.Equal(t, "ffprobe", p.binPath)

	p = New("/opt/ffmpeg/bin/ffprobe")
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", p.binPath)
}
