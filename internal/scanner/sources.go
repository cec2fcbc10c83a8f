package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Scanner finds source files in a project tree
type Scanner struct {
	fs     billy.Filesystem
	logger *zap.SugaredLogger
}

// New creates a new Scanner
func New(fs billy.Filesystem, logger *zap.SugaredLogger) *Scanner {
	return &Scanner{fs: fs, logger: logger}
}

// FindSourceFiles walks dir in lexical order and returns up to limit files
// ending in ext. Every subdirectory is descended, whatever its name; files
// past the limit are skipped without being reported.
func (s *Scanner) FindSourceFiles(dir, ext string, limit int) ([]string, error) {
	var files []string
	skipped := 0

	err := util.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Debugw("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), ext) {
			return nil
		}

		if len(files) >= limit {
			skipped++
			return nil
		}
		files = append(files, filepath.ToSlash(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		s.logger.Debugw("source file limit reached", "limit", limit, "skipped", skipped)
	}

	return files, nil
}
