// Package docroot maps request paths onto a document root and loads file content.
package docroot

import (
	"io/fs"
	"os"
)

// FileSystem is the filesystem capability the resolver and loader depend on.
// Names are host paths as produced by path/filepath.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem is a FileSystem backed by the host operating system.
type OSFileSystem struct{}

// Stat follows symlinks, like os.Stat.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
