package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bloeys/loopy"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a sound file, looping until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Float64("volume", 1, "playback volume, values above 1 amplify")
	playCmd.Flags().Bool("loop", true, "loop the sound until interrupted")
	playCmd.Flags().String("mode", "memory", "decode mode: memory or stream")
	playCmd.Flags().Duration("tick", 16*time.Millisecond, "how often the sound is updated")
	playCmd.Flags().Duration("buffer", loopy.DefaultPlayerBuffer, "how much audio the device reads ahead")

	_ = viper.BindPFlags(playCmd.Flags())
	rootCmd.AddCommand(playCmd)
}

func parseMode(mode string) (loopy.SoundMode, error) {
	switch mode {
	case "memory", "mem":
		return loopy.SoundMode_Memory, nil
	case "stream", "streaming":
		return loopy.SoundMode_Streaming, nil
	default:
		return 0, errors.Errorf("unknown mode %q, must be memory or stream", mode)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {

	mode, err := parseMode(viper.GetString("mode"))
	if err != nil {
		return err
	}

	tick := viper.GetDuration("tick")
	if tick <= 0 {
		return errors.Errorf("tick must be positive, got %s", tick)
	}

	dev, err := loopy.OpenDefaultDevice(deviceFormat())
	if err != nil {
		return errors.Wrap(err, "opening audio device")
	}
	dev.PlayerBuffer = viper.GetDuration("buffer")

	s, err := loopy.NewSoundWithDevice(dev, args[0], viper.GetFloat64("volume"), mode)
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetLoop(viper.GetBool("loop"))
	if err := s.Play(); err != nil {
		return errors.Wrap(err, "playing sound")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return pollSound(ctx, s, tick)
}

//pollSound calls Update every tick until ctx is done, or until a non-looping sound finishes.
//Source errors are logged and playback goes on; a failed player ends the loop
func pollSound(ctx context.Context, s *loopy.Sound, tick time.Duration) error {

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("source", s.Source()).Msg("stopping")
			s.Stop()
			return nil

		case <-ticker.C:
			if err := s.Update(); err != nil {
				if errors.Is(err, loopy.ErrPlayback) || errors.Is(err, loopy.ErrClosed) {
					return errors.Wrap(err, "updating sound")
				}
				log.Warn().Err(err).Str("source", s.Source()).Msg("sound update failed")
			}

			if !s.Looping() && !s.IsPlaying() {
				log.Info().Str("source", s.Source()).Msg("finished")
				return nil
			}
		}
	}
}
