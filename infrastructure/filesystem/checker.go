package filesystem

import (
	"os"

	"vid2mp3/domain/video"
)

// Checker implements video.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the path exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SizeMB returns a regular file's size in binary megabytes.
func (c *Checker) SizeMB(path string) (float64, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return float64(info.Size()) / (1024 * 1024), true
}

// Ensure Checker implements video.FileChecker
var _ video.FileChecker = (*Checker)(nil)
