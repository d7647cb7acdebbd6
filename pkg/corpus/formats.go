package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the corpus file formats the loader accepts
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // Plain text
	FormatMarkdown            // Markdown, read as plain text
)

// FormatInfo contains metadata about a corpus file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Corpus",
		Extensions:  []string{".txt", ".text"},
		MinSize:     1,
	},
	FormatMarkdown: {
		Format:      FormatMarkdown,
		Description: "Markdown Corpus",
		Extensions:  []string{".md", ".markdown"},
		MinSize:     1,
	},
}

// sniffSize is how much of a file is inspected for binary content
const sniffSize = 1024

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	if !hasExtension(filename, formatInfo.Extensions) {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, filepath.Ext(filename), formatInfo.Description, formatInfo.Extensions)
	}

	return validateTextContent(filename)
}

// validateTextContent rejects files whose first bytes contain NUL, which text never does
func validateTextContent(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, sniffSize)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	if bytes.IndexByte(buffer[:n], 0) >= 0 {
		return fmt.Errorf("file %s looks binary", filename)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFileFormat attempts to detect the format of a file from its extension and content
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatText, FormatMarkdown} {
		if !hasExtension(filename, supportedFormats[format].Extensions) {
			continue
		}
		if err := ValidateFileFormat(filename, format); err != nil {
			return FormatUnknown, err
		}
		return format, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// SupportedExtensions returns every extension the loader picks up from a directory
func SupportedExtensions() []string {
	var exts []string
	for _, format := range []FileFormat{FormatText, FormatMarkdown} {
		exts = append(exts, supportedFormats[format].Extensions...)
	}
	return exts
}

func hasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range extensions {
		if ext == valid {
			return true
		}
	}
	return false
}
