package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver resolves corpus and config locations relative to the running binary
type PathResolver struct {
	executableDir string
	workingDir    string
	configDir     string
}

// NewPathResolver creates a path resolver for the current executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
	}

	pr := newPathResolver(filepath.Dir(execPath), cwd, configDirFor(runtime.GOOS, homeDir))
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, configDir=%s",
		pr.executableDir, pr.workingDir, pr.configDir)
	return pr, nil
}

func newPathResolver(execDir, workingDir, configDir string) *PathResolver {
	return &PathResolver{
		executableDir: execDir,
		workingDir:    workingDir,
		configDir:     configDir,
	}
}

// configDirFor returns the platform config directory for wordgram
func configDirFor(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordgram")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordgram")
		}
		return filepath.Join(homeDir, ".config", "wordgram")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordgram")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordgram")
	default:
		return filepath.Join(homeDir, ".wordgram")
	}
}

// CorpusCandidates lists where a corpus path is looked for, in order:
// the path itself if absolute, then relative to the working directory, the executable
// directory and the config directory.
func (pr *PathResolver) CorpusCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	var candidates []string
	if pr.workingDir != "" {
		candidates = append(candidates, filepath.Join(pr.workingDir, userPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.configDir, userPath),
	)
	return candidates
}

// ResolveCorpusPath returns the first existing candidate for userPath.
// When none exists it returns os.ErrNotExist along with the first candidate for error reporting.
func (pr *PathResolver) ResolveCorpusPath(userPath string) (string, error) {
	candidates := pr.CorpusCandidates(userPath)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found corpus at: %s", path)
			return path, nil
		}
		log.Debugf("Corpus candidate not found: %s", path)
	}
	return candidates[0], os.ErrNotExist
}

// GetConfigDir returns the platform config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
