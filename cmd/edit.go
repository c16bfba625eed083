package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var (
	editSpecFile     string
	editVideoFilters []string
	editAudioFilters []string
	editResolution   string
	editResizeMode   string
	editSpeed        string
	editFadeIn       float64
	editFadeOut      float64
	editVolume       float64
	editMute         bool
	editTrack        string
	editFormat       string
	editVideoCodec   string
	editAudioCodec   string
)

var editCmd = &cobra.Command{
	Use:   "edit [clip]",
	Short: "Apply a custom combination of edits to one clip",
	Long: `Apply any combination of raw filter expressions, resizing, speed
change, audio fades, volume adjustment, muting, or audio replacement to
a single clip.

The request can also be described in a YAML document passed with
--spec; flags set on the command line override the document's fields,
and a clip named as an argument overrides the document's filename.

Examples:
  clipforge edit talk.mp4 --resolution 1280:720 --resize-mode cover
  clipforge edit talk.mp4 --speed 2 --fade-out 3 --volume 0.8
  clipforge edit --spec promo.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req compile.EditRequest
		if editSpecFile != "" {
			if err := loadSpec(editSpecFile, &req); err != nil {
				return err
			}
		} else if len(args) == 0 {
			return errors.New("a clip name or a --spec file is required")
		}
		if len(args) == 1 {
			req.Filename = args[0]
		}

		flags := cmd.Flags()
		if flags.Changed("vf") {
			req.VideoFilters = editVideoFilters
		}
		if flags.Changed("af") {
			req.AudioFilters = editAudioFilters
		}
		if flags.Changed("resolution") {
			req.Resolution = editResolution
		}
		if flags.Changed("resize-mode") {
			req.ResizeMode = editResizeMode
		}
		if flags.Changed("speed") {
			req.Speed = editSpeed
		}
		if flags.Changed("fade-in") {
			req.FadeIn = editFadeIn
		}
		if flags.Changed("fade-out") {
			req.FadeOut = editFadeOut
		}
		if flags.Changed("volume") {
			req.Volume = editVolume
		}
		if flags.Changed("mute") {
			req.Mute = editMute
		}
		if flags.Changed("track") {
			req.Track = editTrack
		}
		if flags.Changed("format") {
			req.Format = editFormat
		}
		if flags.Changed("video-codec") {
			req.VideoCodec = editVideoCodec
		}
		if flags.Changed("audio-codec") {
			req.AudioCodec = editAudioCodec
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req.Output, err = rt.resolveOutput(req.Output, req.Format)
		if err != nil {
			return err
		}

		plan, err := rt.deps.Compiler.CompileEdit(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}

func init() {
	editCmd.Flags().StringVar(&editSpecFile, "spec", "", "YAML file describing the edit request")
	editCmd.Flags().StringArrayVar(&editVideoFilters, "vf", nil, "Raw video filter expression (repeatable, applied in order)")
	editCmd.Flags().StringArrayVar(&editAudioFilters, "af", nil, "Raw audio filter expression (repeatable, applied in order)")
	editCmd.Flags().StringVar(&editResolution, "resolution", "", "Target resolution as width:height (default: keep original)")
	editCmd.Flags().StringVar(&editResizeMode, "resize-mode", "", "Resize mode: fit, cover, or stretch (default: fit)")
	editCmd.Flags().StringVar(&editSpeed, "speed", "", "Playback speed factor (default: 1)")
	editCmd.Flags().Float64Var(&editFadeIn, "fade-in", 0, "Audio fade-in duration in seconds")
	editCmd.Flags().Float64Var(&editFadeOut, "fade-out", 0, "Audio fade-out duration in seconds")
	editCmd.Flags().Float64Var(&editVolume, "volume", 0, "Audio volume multiplier (default: 1)")
	editCmd.Flags().BoolVar(&editMute, "mute", false, "Strip the audio stream")
	editCmd.Flags().StringVar(&editTrack, "track", "", "Replace the audio with this looped library track")
	editCmd.Flags().StringVar(&editFormat, "format", "", "Output container format (default: mp4)")
	editCmd.Flags().StringVar(&editVideoCodec, "video-codec", "", "Override the output video codec")
	editCmd.Flags().StringVar(&editAudioCodec, "audio-codec", "", "Override the output audio codec")
}
