package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"vid2mp3/domain/video"
)

// Converter implements video.Converter using ffmpeg
type Converter struct {
	ffmpegPath string
	runner     CommandRunner
}

// ConverterOption is a functional option for configuring Converter
type ConverterOption func(*Converter)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) ConverterOption {
	return func(c *Converter) {
		c.ffmpegPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) ConverterOption {
	return func(c *Converter) {
		c.runner = runner
	}
}

// NewConverter creates a new FFmpeg-based MP3 converter
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Convert implements video.Converter. The child's merged output is read
// line by line while it runs; progress lines yield a token through
// onProgress, everything else is discarded. Returns nil on exit code 0,
// *video.ExitError on a non-zero exit, and video.ErrConverterNotFound when
// the binary cannot be launched at all.
func (c *Converter) Convert(ctx context.Context, req *video.ConversionRequest, onProgress video.ProgressFunc) error {
	args := []string{
		"-i", req.InputPath,
		"-vn",                   // No video
		"-acodec", "libmp3lame", // MP3 codec
		"-ab", req.Bitrate,      // Audio bitrate
		"-y",                    // Overwrite output file if it exists
		req.OutputPath,
	}

	proc, err := c.runner.Start(ctx, c.ffmpegPath, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return video.ErrConverterNotFound
		}
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	scanner := bufio.NewScanner(proc.Output())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if token, ok := ProgressToken(scanner.Text()); ok && onProgress != nil {
			onProgress(token)
		}
	}
	readErr := scanner.Err()

	if err := proc.Wait(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			return &video.ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("ffmpeg did not run to completion: %w", err)
	}

	if readErr != nil {
		return fmt.Errorf("failed to read ffmpeg output: %w", readErr)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (c *Converter) VerifyInstalled(ctx context.Context) error {
	if _, err := c.runner.Output(ctx, c.ffmpegPath, "-version"); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return video.ErrConverterNotFound
		}
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// ProgressToken extracts the time= value from an ffmpeg progress line.
// Only lines carrying both "time=" and "bitrate=" count as progress; the
// rest of ffmpeg's chatter reports false.
func ProgressToken(line string) (string, bool) {
	if !strings.Contains(line, "time=") || !strings.Contains(line, "bitrate=") {
		return "", false
	}

	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, "time=") {
			return strings.TrimPrefix(field, "time="), true
		}
	}

	return "", false
}

// Ensure Converter implements video.Converter
var _ video.Converter = (*Converter)(nil)
