package internal

import (
	"fmt"
	"sort"
	"strings"
)

// MaxFileSize is the upload ceiling enforced before a submission starts (5 MiB)
const MaxFileSize = 5_242_880

// allowedExtensions matches the formats the backend's file readers accept
var allowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"eml":  true,
	"msg":  true,
	"mbox": true,
}

// AllowedExtensions returns the accepted file extensions in sorted order
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ValidateFile checks a candidate upload against the extension allowlist
// and the size ceiling. The extension is the substring after the last dot,
// compared case-insensitively.
func ValidateFile(name string, size int64) error {
	ext := ""
	if idx := strings.LastIndex(name, "."); idx >= 0 && idx < len(name)-1 {
		ext = strings.ToLower(name[idx+1:])
	}
	if !allowedExtensions[ext] {
		return &ValidationError{
			FileName: name,
			Reason:   fmt.Sprintf("unsupported extension %q (allowed: %s)", ext, strings.Join(AllowedExtensions(), ", ")),
		}
	}
	if size > MaxFileSize {
		return &ValidationError{
			FileName: name,
			Reason:   fmt.Sprintf("file is %d bytes, maximum is %d (5 MiB)", size, MaxFileSize),
		}
	}
	return nil
}
