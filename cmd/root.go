package cmd

import (
	"fmt"
	"os"

	"vid2mp3/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vid2mp3",
	Short: "Convert video files to MP3 audio",
	Long: `vid2mp3 is an interactive front-end for ffmpeg that extracts the
audio track of a video file to MP3.

It lists the video files in a working directory, lets you pick one (or
enter a path or URL by hand), and shows live conversion progress.

The working directory defaults to the DEFAULT_DIR value from an optional
.env file, falling back to your Downloads folder.`,
	RunE:         runConvert,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file with DEFAULT_DIR (default is ./.env)")
}

func initConfig() {
	if envFile == "" {
		envFile = config.EnvFile
	}
	// Load never fails; a missing file means built-in defaults.
	cfg = config.Load(envFile)
}

// GetConfig returns the loaded configuration
func GetConfig() config.Config {
	return cfg
}
