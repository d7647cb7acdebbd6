/*
Package corpus reads training text for the n-gram model from disk.

A corpus is either a single text file or a directory of them. Directory files are read in
lexical order and joined with newlines, so the same directory always yields the same corpus
string and therefore the same trained model.
*/
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// FileInfo describes a corpus file found on disk
type FileInfo struct {
	Path   string
	Format FileFormat
	Size   int64
}

// Available scans dir for corpus files, sorted by name.
// Files that fail validation are skipped with a warning.
func Available(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus dir %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !hasExtension(path, SupportedExtensions()) {
			continue
		}
		format, err := DetectFileFormat(path)
		if err != nil {
			log.Warnf("Skipping corpus file %s: %v", path, err)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Warnf("Skipping corpus file %s: %v", path, err)
			continue
		}
		files = append(files, FileInfo{Path: path, Format: format, Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// LoadFile reads a single validated corpus file
func LoadFile(path string) (string, error) {
	if _, err := DetectFileFormat(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	log.Debugf("Loaded corpus file %s (%d bytes)", path, len(data))
	return string(data), nil
}

// LoadDir reads every corpus file in dir, joined by newlines.
// A directory without corpus files is an error.
func LoadDir(dir string) (string, error) {
	files, err := Available(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no corpus files (%s) in %s", strings.Join(SupportedExtensions(), ", "), dir)
	}

	var b strings.Builder
	for i, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read corpus file %s: %w", f.Path, err)
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(data)
	}
	log.Debugf("Loaded %d corpus files from %s (%d bytes)", len(files), dir, b.Len())
	return b.String(), nil
}

// Load reads path as a corpus file or a directory of corpus files
func Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat corpus path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}
