package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "words.txt", "cat cat cat")

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cat cat cat", text)
}

func TestLoadFileRejects(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name        string
		content     string
		description string
	}{
		{"empty.txt", "", "Empty file below minimum size"},
		{"words.csv", "cat,dog", "Unsupported extension"},
		{"blob.txt", "ab\x00cd", "Binary content"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.content)
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# dog")
	writeFile(t, dir, "a.txt", "cat")
	writeFile(t, dir, "c.txt", "bird")
	writeFile(t, dir, "skip.bin", "ignored")
	writeFile(t, dir, "empty.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	files, err := Available(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, FormatText, files[0].Format)
	assert.Equal(t, FormatMarkdown, files[1].Format)
	assert.Equal(t, int64(3), files[0].Size)

	text, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "cat\n# dog\nbird", text)

	viaLoad, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, text, viaLoad)
}

func TestLoadDirWithoutCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.json", "{}")

	_, err := LoadDir(dir)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()

	format, err := DetectFileFormat(writeFile(t, dir, "A.TXT", "x"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = DetectFileFormat(writeFile(t, dir, "readme.markdown", "x"))
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, format)

	format, err = DetectFileFormat(writeFile(t, dir, "data.json", "x"))
	assert.Error(t, err)
	assert.Equal(t, FormatUnknown, format)

	info, ok := GetFormatInfo(FormatText)
	require.True(t, ok)
	assert.Contains(t, info.Extensions, ".txt")
}
