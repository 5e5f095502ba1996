package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

var artExts = []string{".jpg", ".png", ".jpeg"}

// artNames lists directory-wide artwork names in priority order.
var artNames = []string{"cover", "poster", "folder", "thumb", "front"}

// FindArtwork looks for artwork next to a local media file: first a sidecar
// sharing the media's base name (clip.mkv -> clip.jpg), then common cover
// names in the same directory. Returns "" for remote locators or no match.
func FindArtwork(locator string) string {
	if locator == "" || strings.Contains(locator, "://") {
		return ""
	}
	dir := filepath.Dir(locator)
	base := strings.TrimSuffix(filepath.Base(locator), filepath.Ext(locator))

	for _, name := range append([]string{base}, artNames...) {
		for _, ext := range artExts {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
