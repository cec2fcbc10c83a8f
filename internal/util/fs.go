package util

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	billyutil "github.com/go-git/go-billy/v5/util"
)

// OpenRoot returns a filesystem rooted at the project directory
func OpenRoot(root string) billy.Filesystem {
	return osfs.New(root)
}

// FileExists checks if a regular file exists
func FileExists(fs billy.Basic, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(fs billy.Basic, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadText reads a whole file into memory
func ReadText(fs billy.Basic, path string) (string, error) {
	data, err := billyutil.ReadFile(fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
