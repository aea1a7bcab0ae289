package imagesource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DownloadPrefix is the file name prefix for saved results.
const DownloadPrefix = "clearview-cleaned-"

// DownloadName returns the generated file name for a processed image.
func DownloadName(img Image, now time.Time) string {
	return fmt.Sprintf("%s%d.%s", DownloadPrefix, now.UnixMilli(), img.Ext())
}

// Stem returns the file name of source without directory and extension.
func Stem(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CleanedName returns "<stem>-cleaned.<ext>", with the extension taken from
// the processed image.
func CleanedName(stem string, img Image) string {
	return stem + "-cleaned." + img.Ext()
}

// Save writes the image bytes unchanged into dir under a generated name and
// returns the full path.
func Save(dir string, img Image, now time.Time) (string, error) {
	return SaveAs(dir, DownloadName(img, now), img)
}

// SaveAs writes the image bytes unchanged to dir/name and returns the full path.
func SaveAs(dir, name string, img Image) (string, error) {
	if img.Empty() {
		return "", ErrEmpty
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// DefaultDownloadDir returns the user's Downloads directory, or the home
// directory when it does not exist.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	downloads := filepath.Join(home, "Downloads")
	if st, err := os.Stat(downloads); err == nil && st.IsDir() {
		return downloads
	}
	return home
}
