package video

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IsURL reports whether s looks like a URL. The heuristic requires both a
// scheme and a host, so bare filesystem paths never qualify.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// OutputPath derives the MP3 output path for an input path or URL.
//
// For a URL the basename of the URL path is used, extension stripped, with
// "output" standing in when the URL has no usable path segment. For a
// filesystem path the extension (if any) is replaced, keeping directory and
// base name.
func OutputPath(input string) string {
	if IsURL(input) {
		u, err := url.Parse(input)
		if err != nil {
			return "output.mp3"
		}
		base := path.Base(u.Path)
		base = strings.TrimSuffix(base, path.Ext(base))
		if base == "" || base == "." || base == "/" {
			base = "output"
		}
		return base + ".mp3"
	}

	return strings.TrimSuffix(input, filepath.Ext(input)) + ".mp3"
}
