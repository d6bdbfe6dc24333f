package model

import (
	"path/filepath"
	"strings"
)

var AllowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// IsVideoFilename reports whether the filename carries an extension the
// processing pipeline accepts.
func IsVideoFilename(name string) bool {
	return AllowedVideoExtensions[strings.ToLower(filepath.Ext(name))]
}
