package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconvert "vid2mp3/application/convert"
	"vid2mp3/domain/video"
	"vid2mp3/infrastructure/config"
	"vid2mp3/infrastructure/ffmpeg"
	"vid2mp3/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	convertDir    string
	convertFFmpeg string
)

// errConversionFailed is returned to cobra so the process exits non-zero
// after the failure details have already been printed.
var errConversionFailed = errors.New("conversion failed")

func init() {
	rootCmd.Flags().StringVar(&convertDir, "dir", "", "working directory (skips the directory prompt)")
	rootCmd.Flags().StringVar(&convertFFmpeg, "ffmpeg", "", "path to the ffmpeg binary (default \"ffmpeg\" from PATH)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var opts []ffmpeg.ConverterOption
	if convertFFmpeg != "" {
		opts = append(opts, ffmpeg.WithFFmpegPath(convertFFmpeg))
	}

	return RunConvertWithDependencies(
		cmd.Context(),
		DefaultPrompter,
		filesystem.NewScanner(),
		filesystem.NewChecker(),
		ffmpeg.NewConverter(opts...),
		GetConfig(),
		ConvertOptions{WorkingDir: convertDir},
		os.Stdout,
	)
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// ConvertOptions carries flag-driven overrides of the interactive flow
type ConvertOptions struct {
	WorkingDir string // when set, the directory prompt is skipped
}

// RunConvertWithDependencies runs the interactive conversion flow with
// injected dependencies (for testing)
func RunConvertWithDependencies(
	ctx context.Context,
	prompter Prompter,
	scanner video.DirectoryScanner,
	fileChecker video.FileChecker,
	converter video.Converter,
	cfg config.Config,
	opts ConvertOptions,
	out OutputWriter,
) error {
	fmt.Fprintln(out, "Video to Audio Converter")
	fmt.Fprintln(out, "========================")

	rootDir, err := askDirectory(prompter, fileChecker, cfg.DefaultDirectory, opts, out)
	if err != nil {
		return promptFailure(err, out)
	}

	fmt.Fprintf(out, "\nWorking in: %s\n", rootDir)

	files, err := scanner.Scan(rootDir)
	if err != nil {
		// Degrades to the "no files found" flow below.
		fmt.Fprintf(out, "Error reading directory: %v\n", err)
		files = nil
	}

	selected, quit, err := selectVideoFile(prompter, files, out)
	if err != nil {
		return promptFailure(err, out)
	}
	if quit {
		fmt.Fprintln(out, "Goodbye!")
		return nil
	}

	// Absolute paths and URLs are used verbatim; anything else is relative
	// to the working directory.
	fullInput := selected
	if !video.IsURL(selected) && !filepath.IsAbs(selected) {
		fullInput = filepath.Join(rootDir, selected)
	}

	if !video.IsURL(fullInput) && !fileChecker.Exists(fullInput) {
		fmt.Fprintf(out, "File not found: %s\n", fullInput)
		return nil
	}

	outputPath := video.OutputPath(fullInput)

	fmt.Fprintf(out, "\nInput: %s\n", fullInput)
	fmt.Fprintf(out, "Output: %s\n\n", outputPath)

	// Verify ffmpeg is available if the converter supports it
	if verifiable, ok := converter.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			reportConversionError(err, out)
			fmt.Fprintln(out, "Conversion failed!")
			return errConversionFailed
		}
	}

	fmt.Fprintf(out, "Converting: %s -> %s\n", filepath.Base(fullInput), filepath.Base(outputPath))
	fmt.Fprintln(out, "FFmpeg started...")

	service := appconvert.NewService(converter, fileChecker)
	renderer := NewProgressRenderer(out)

	result, err := service.Convert(ctx, appconvert.Input{
		InputPath:  fullInput,
		OnProgress: renderer.Render,
	})
	renderer.Finish()

	if err != nil {
		reportConversionError(err, out)
		fmt.Fprintln(out, "Conversion failed!")
		return errConversionFailed
	}

	fmt.Fprintf(out, "Conversion finished: %s\n", result.OutputPath)
	if result.OutputSizeMB != nil {
		fmt.Fprintf(out, "Output file size: %.2f MB\n", *result.OutputSizeMB)
	}

	return nil
}

// promptFailure maps a prompt error to the friendly interrupt exit or a
// real failure.
func promptFailure(err error, out OutputWriter) error {
	if isInterrupt(err) {
		fmt.Fprintln(out, "\nGoodbye!")
		return nil
	}
	return fmt.Errorf("prompt failed: %w", err)
}

func reportConversionError(err error, out OutputWriter) {
	var exitErr *video.ExitError
	switch {
	case errors.Is(err, video.ErrConverterNotFound):
		fmt.Fprintln(out, "FFmpeg not found. Please make sure FFmpeg is installed and in your PATH.")
	case errors.As(err, &exitErr):
		fmt.Fprintf(out, "FFmpeg failed with return code: %d\n", exitErr.Code)
	default:
		fmt.Fprintf(out, "Error during conversion: %v\n", err)
	}
}

// askDirectory obtains the working directory: the configured default after
// a confirm, or a custom path prompted until it exists.
func askDirectory(prompter Prompter, fileChecker video.FileChecker, defaultDir string, opts ConvertOptions, out OutputWriter) (string, error) {
	if opts.WorkingDir != "" {
		if !fileChecker.Exists(opts.WorkingDir) {
			return "", fmt.Errorf("directory not found: %s", opts.WorkingDir)
		}
		return opts.WorkingDir, nil
	}

	fmt.Fprintf(out, "Default directory: %s\n", defaultDir)

	useDefault, err := prompter.Confirm("Use this as the root directory?", true)
	if err != nil {
		return "", err
	}
	if useDefault {
		return defaultDir, nil
	}

	for {
		dir, err := prompter.Input("Enter root directory path:", "")
		if err != nil {
			return "", err
		}
		dir = strings.TrimSpace(dir)
		if dir != "" && fileChecker.Exists(dir) {
			return dir, nil
		}
		fmt.Fprintf(out, "Directory not found: %s\n", dir)
	}
}

const manualEntryOption = "Enter file path or URL manually"

// selectVideoFile drives the file menu. The second return is true when the
// user declined every option and the program should end cleanly.
func selectVideoFile(prompter Prompter, files []video.VideoFile, out OutputWriter) (string, bool, error) {
	if len(files) == 0 {
		fmt.Fprintln(out, "No supported video files found in the directory.")
		fmt.Fprintf(out, "Supported formats: %s\n", video.SupportedFormats())

		manual, err := prompter.Confirm("Would you like to enter a file path or URL manually?", true)
		if err != nil {
			return "", false, err
		}
		if !manual {
			return "", true, nil
		}

		selected, err := promptManualInput(prompter)
		return selected, false, err
	}

	fmt.Fprintf(out, "Found %d video file(s)\n\n", len(files))

	options := make([]string, 0, len(files)+1)
	for _, f := range files {
		options = append(options, f.String())
	}
	options = append(options, manualEntryOption)

	idx, err := prompter.Select("Select a video file to convert:", options)
	if err != nil {
		return "", false, err
	}

	if idx == len(files) {
		selected, err := promptManualInput(prompter)
		return selected, false, err
	}

	return files[idx].Name, false, nil
}

// promptManualInput re-prompts until a non-empty path or URL is entered.
func promptManualInput(prompter Prompter) (string, error) {
	for {
		input, err := prompter.Input("Enter video file path or URL:", "")
		if err != nil {
			return "", err
		}
		if input = strings.TrimSpace(input); input != "" {
			return input, nil
		}
	}
}
