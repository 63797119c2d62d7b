package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vid2mp3/domain/video"
)

// Scanner implements video.DirectoryScanner using the os package
type Scanner struct{}

// NewScanner creates a new directory scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan lists the supported video files directly under dir, sorted by name
// (case-insensitive). A directory that does not exist yields an empty
// result, not an error; any other read failure is returned so the caller
// can report it and carry on with an empty list.
func (s *Scanner) Scan(dir string) ([]video.VideoFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []video.VideoFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !video.IsSupportedExtension(ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, video.VideoFile{
			Name:      entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			SizeMB:    float64(info.Size()) / (1024 * 1024),
			Extension: ext,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	return files, nil
}

// Ensure Scanner implements video.DirectoryScanner
var _ video.DirectoryScanner = (*Scanner)(nil)
