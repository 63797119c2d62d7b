package video

import (
	"context"
	"errors"
	"fmt"
)

// ErrConverterNotFound indicates the external transcoding tool is not
// installed or not on PATH. Callers use it to tell "tool missing" apart
// from "tool ran and failed".
var ErrConverterNotFound = errors.New("ffmpeg not found in PATH")

// ExitError reports that the transcoding tool ran but exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffmpeg exited with code %d", e.Code)
}

// ExitCode returns the tool's exit code.
func (e *ExitError) ExitCode() int { return e.Code }

// ProgressFunc receives each progress token (the time= value) extracted
// from the tool's output while a conversion runs.
type ProgressFunc func(token string)

// Converter defines the interface for conversion operations
// This is a port that can be implemented by different infrastructure adapters
type Converter interface {
	// Convert runs the conversion described by req, firing onProgress for
	// each progress update. A nil onProgress discards progress.
	Convert(ctx context.Context, req *ConversionRequest, onProgress ProgressFunc) error
}

// FileChecker defines filesystem probes the conversion flow needs.
type FileChecker interface {
	// Exists returns true if the path exists
	Exists(path string) bool
	// SizeMB returns a regular file's size in binary megabytes. The second
	// return is false when the size cannot be determined.
	SizeMB(path string) (float64, bool)
}

// DirectoryScanner lists conversion candidates in a directory.
type DirectoryScanner interface {
	Scan(dir string) ([]VideoFile, error)
}
