package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloeys/loopy"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Decode a sound file and print what would be played",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {

	f := deviceFormat()
	sb, err := loopy.Decode(args[0], f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:     %s\n", args[0])
	fmt.Fprintf(out, "Type:     %s\n", loopy.GetSoundFileType(args[0]))
	fmt.Fprintf(out, "Format:   %dHz, %d channel(s), 16-bit\n", f.SampleRate, f.ChanCount)
	fmt.Fprintf(out, "PCM size: %d bytes\n", sb.Size())
	fmt.Fprintf(out, "Duration: %s\n", loopy.PCMDuration(sb.Size(), f))

	return nil
}
