package main

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bloeys/loopy"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "loopy",
	Short:         "Play sound files on a loop",
	Long:          `loopy plays mp3, wav and ogg files on the default audio device, re-queueing them so they loop without gaps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging(viper.GetString("log-level"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Int("sample-rate", int(loopy.DefaultFormat.SampleRate), "device sample rate")
	rootCmd.PersistentFlags().Int("channels", int(loopy.DefaultFormat.ChanCount), "device channel count (1 or 2)")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() error {

	viper.SetEnvPrefix("loopy")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}

	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config %s", cfgFile)
	}

	return nil
}

func initLogging(level string) error {

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()

	loopy.SetLogger(log.Logger)
	return nil
}

func deviceFormat() loopy.Format {
	return loopy.Format{
		SampleRate: loopy.SampleRate(viper.GetInt("sample-rate")),
		ChanCount:  loopy.SoundChannelCount(viper.GetInt("channels")),
		BitDepth:   loopy.SoundBitDepth_2,
	}
}
