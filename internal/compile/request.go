package compile

// Request types for the edit operation family. Fields marked with validate
// tags are checked before any clip resolution or probe work; the generic
// edit request additionally carries free-form string fields (speed,
// resolution) whose parsing errors surface as ValidationErrors.

// ConvertRequest changes the container format of one clip, optionally
// overriding the output codecs.
type ConvertRequest struct {
	Filename   string `json:"filename" yaml:"filename" validate:"required"`
	Format     string `json:"format" yaml:"format" validate:"required,alphanum"`
	VideoCodec string `json:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
	Output     string `json:"output" yaml:"output" validate:"required"`
}

// SpeedRequest changes the playback speed of one clip while preserving
// audio pitch. The factor domain is (0.1, 10.0].
type SpeedRequest struct {
	Filename string  `json:"filename" yaml:"filename" validate:"required"`
	Factor   float64 `json:"factor" yaml:"factor" validate:"gt=0.1,lte=10"`
	Output   string  `json:"output" yaml:"output" validate:"required"`
}

// MuteRequest strips the audio stream from one clip.
type MuteRequest struct {
	Filename string `json:"filename" yaml:"filename" validate:"required"`
	Output   string `json:"output" yaml:"output" validate:"required"`
}

// ReplaceAudioRequest swaps a clip's audio for a separate track. The track
// is looped so a short track covers the whole video, and the output is
// clamped to the video's duration.
type ReplaceAudioRequest struct {
	Filename string `json:"filename" yaml:"filename" validate:"required"`
	Track    string `json:"track" yaml:"track" validate:"required"`
	Output   string `json:"output" yaml:"output" validate:"required"`
}

// EditRequest is the generic single-clip edit: any combination of raw
// filter expressions, resize, speed, fades, volume, and an audio choice.
type EditRequest struct {
	Filename string `json:"filename" yaml:"filename" validate:"required"`

	// VideoFilters and AudioFilters are raw engine filter expressions
	// applied in the order given.
	VideoFilters []string `json:"video_filters,omitempty" yaml:"video_filters,omitempty"`
	AudioFilters []string `json:"audio_filters,omitempty" yaml:"audio_filters,omitempty"`

	// Resolution is a "width:height" string, empty or "original" for no
	// scaling. ResizeMode is fit, cover, or stretch (default fit).
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	ResizeMode string `json:"resize_mode,omitempty" yaml:"resize_mode,omitempty"`

	// Speed is a free-form positive factor; empty or "1.0" means no
	// change. Unlike SpeedRequest it is not range-restricted.
	Speed string `json:"speed,omitempty" yaml:"speed,omitempty"`

	// FadeIn and FadeOut are audio fade durations in seconds.
	FadeIn  float64 `json:"fade_in,omitempty" yaml:"fade_in,omitempty" validate:"gte=0"`
	FadeOut float64 `json:"fade_out,omitempty" yaml:"fade_out,omitempty" validate:"gte=0"`

	// Volume is a positive multiplier; zero means unset (1.0).
	Volume float64 `json:"volume,omitempty" yaml:"volume,omitempty" validate:"gte=0"`

	// Mute drops the audio stream entirely; Track replaces it with a
	// looped external track. The two are mutually exclusive.
	Mute  bool   `json:"mute,omitempty" yaml:"mute,omitempty"`
	Track string `json:"track,omitempty" yaml:"track,omitempty"`

	Format     string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,alphanum"`
	VideoCodec string `json:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
	Output     string `json:"output" yaml:"output" validate:"required"`
}

// StitchRequest concatenates two or more clips, in the order given, into
// one output.
type StitchRequest struct {
	Filenames []string `json:"clips" yaml:"clips" validate:"required,min=2,dive,required"`

	// Resolution and ResizeMode normalize every clip before the concat;
	// same semantics as EditRequest.
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	ResizeMode string `json:"resize_mode,omitempty" yaml:"resize_mode,omitempty"`

	// Mute drops all audio; Track replaces it with a looped external
	// track. Mutually exclusive. With neither set, each clip's own audio
	// is concatenated alongside its video.
	Mute  bool   `json:"mute,omitempty" yaml:"mute,omitempty"`
	Track string `json:"track,omitempty" yaml:"track,omitempty"`

	Format     string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,alphanum"`
	VideoCodec string `json:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
	Output     string `json:"output" yaml:"output" validate:"required"`
}

// AudioPolicyKind discriminates the closed set of audio handling choices.
type AudioPolicyKind int

const (
	// AudioOriginal keeps each clip's own audio.
	AudioOriginal AudioPolicyKind = iota
	// AudioMuted emits no audio stream at all.
	AudioMuted
	// AudioReplaced maps a separate looped track as the only audio.
	AudioReplaced
)

// AudioPolicy is the resolved audio handling decision. The three cases are
// mutually exclusive by construction; a replacement track name and loop
// flag exist only on the Replaced case.
type AudioPolicy struct {
	kind  AudioPolicyKind
	track string
	loop  bool
}

// Kind returns the policy discriminator.
func (p AudioPolicy) Kind() AudioPolicyKind {
	return p.kind
}

// Track returns the replacement track name; empty unless Kind is
// AudioReplaced.
func (p AudioPolicy) Track() string {
	return p.track
}

// Loop reports whether a replacement track repeats to cover the whole
// output. Meaningful only when Kind is AudioReplaced.
func (p AudioPolicy) Loop() bool {
	return p.loop
}

// resolveAudioPolicy folds the request's mute flag and replacement track
// into the closed policy type. Requesting both is rejected: the cases are
// mutually exclusive.
func resolveAudioPolicy(mute bool, track string) (AudioPolicy, error) {
	switch {
	case mute && track != "":
		return AudioPolicy{}, &ValidationError{
			Field:  "audio",
			Reason: "mute and a replacement track are mutually exclusive",
		}
	case mute:
		return AudioPolicy{kind: AudioMuted}, nil
	case track != "":
		return AudioPolicy{kind: AudioReplaced, track: track, loop: true}, nil
	default:
		return AudioPolicy{kind: AudioOriginal}, nil
	}
}
