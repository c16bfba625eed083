package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var (
	stitchSpecFile   string
	stitchResolution string
	stitchResizeMode string
	stitchMute       bool
	stitchTrack      string
	stitchFormat     string
	stitchVideoCodec string
	stitchAudioCodec string
)

var stitchCmd = &cobra.Command{
	Use:   "stitch [clip]...",
	Short: "Concatenate two or more clips into one output",
	Long: `Stitch clips together in the order given. Clips of differing sizes
should be normalized with --resolution so the concatenation lines up.
By default each clip keeps its own audio; --mute drops all audio and
--track replaces it with a looped library track.

The clip list can also come from a YAML document passed with --spec;
clips named as arguments override the document's list.

Examples:
  clipforge stitch intro.mp4 main.mp4 outro.mp4
  clipforge stitch intro.mp4 main.mp4 --resolution 1920:1080 --track music.mp3
  clipforge stitch --spec episode.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req compile.StitchRequest
		if stitchSpecFile != "" {
			if err := loadSpec(stitchSpecFile, &req); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			req.Filenames = args
		}
		if stitchSpecFile == "" && len(req.Filenames) < 2 {
			return errors.New("stitch needs at least two clips or a --spec file")
		}

		flags := cmd.Flags()
		if flags.Changed("resolution") {
			req.Resolution = stitchResolution
		}
		if flags.Changed("resize-mode") {
			req.ResizeMode = stitchResizeMode
		}
		if flags.Changed("mute") {
			req.Mute = stitchMute
		}
		if flags.Changed("track") {
			req.Track = stitchTrack
		}
		if flags.Changed("format") {
			req.Format = stitchFormat
		}
		if flags.Changed("video-codec") {
			req.VideoCodec = stitchVideoCodec
		}
		if flags.Changed("audio-codec") {
			req.AudioCodec = stitchAudioCodec
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req.Output, err = rt.resolveOutput(req.Output, req.Format)
		if err != nil {
			return err
		}

		plan, err := rt.deps.Compiler.CompileStitch(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}

func init() {
	stitchCmd.Flags().StringVar(&stitchSpecFile, "spec", "", "YAML file describing the stitch request")
	stitchCmd.Flags().StringVar(&stitchResolution, "resolution", "", "Normalize every clip to width:height before concatenation")
	stitchCmd.Flags().StringVar(&stitchResizeMode, "resize-mode", "", "Resize mode: fit, cover, or stretch (default: fit)")
	stitchCmd.Flags().BoolVar(&stitchMute, "mute", false, "Drop all audio from the output")
	stitchCmd.Flags().StringVar(&stitchTrack, "track", "", "Replace all audio with this looped library track")
	stitchCmd.Flags().StringVar(&stitchFormat, "format", "", "Output container format (default: mp4)")
	stitchCmd.Flags().StringVar(&stitchVideoCodec, "video-codec", "", "Override the output video codec")
	stitchCmd.Flags().StringVar(&stitchAudioCodec, "audio-codec", "", "Override the output audio codec")
}
