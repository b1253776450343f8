package converter

import (
	"os"
	"path/filepath"
	"strings"
)

// Fixed relative folder names the converter works against.
const (
	InputDir  = "input"
	OutputDir = "output"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".avif": true,
}

// Discover ensures inputDir and outputDir exist, creating them when absent,
// and returns the direct entries of inputDir whose lowercase extension is a
// supported image type. No recursion, no content sniffing. The returned
// order is whatever the filesystem yields.
func Discover(inputDir, outputDir string) ([]string, error) {
	for _, dir := range []string{inputDir, outputDir} {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, &DiscoveryError{Path: inputDir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(inputDir, entry.Name())
		if !entry.Type().IsRegular() {
			// Follow symlinks; broken links and links to directories are
			// not files.
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if allowedExtensions[ext] {
			files = append(files, path)
		}
	}

	return files, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if mkErr := os.Mkdir(dir, 0o755); mkErr != nil {
			return &DiscoveryError{Path: dir, Err: mkErr}
		}
		return nil
	}
	if err != nil {
		return &DiscoveryError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &DiscoveryError{Path: dir, Err: errNotDirectory}
	}
	return nil
}
