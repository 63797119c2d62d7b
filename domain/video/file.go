package video

import (
	"fmt"
	"strings"
)

// supportedExtensions is the fixed set of video file suffixes recognized
// during directory scans. Lowercase, with the leading dot.
var supportedExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".flv":  true,
	".wmv":  true,
	".webm": true,
	".m4v":  true,
	".3gp":  true,
}

// IsSupportedExtension reports whether ext (with leading dot) names a
// recognized video format. The check is case-insensitive.
func IsSupportedExtension(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// SupportedFormats returns the recognized formats as a display string,
// e.g. "mp4, avi, mov, ...".
func SupportedFormats() string {
	formats := []string{"mp4", "avi", "mov", "mkv", "flv", "wmv", "webm", "m4v", "3gp"}
	return strings.Join(formats, ", ")
}

// VideoFile is a conversion candidate discovered during a directory scan.
// Values are built from filesystem metadata and never mutated.
type VideoFile struct {
	Name      string
	Path      string
	SizeMB    float64
	Extension string // lowercase, includes the leading dot
}

// String renders the file the way the selection menu shows it.
func (f VideoFile) String() string {
	return fmt.Sprintf("%s (%.1f MB)", f.Name, f.SizeMB)
}
