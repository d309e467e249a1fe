package docroot

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultIndexFiles lists the files probed, in order, when a request names a directory.
var DefaultIndexFiles = []string{"index.txt", "index.html", "index.shtml"}

// Target is the filesystem location chosen for a valid request.
type Target struct {
	// Path is the host path of the file to serve.
	Path string
	// Fallback is true when a directory was replaced by one of its index files.
	Fallback bool
}

// Resolver maps rooted request paths onto files below Root.
type Resolver struct {
	Root       string
	IndexFiles []string
	FS         FileSystem
	// Normalize applies Unicode NFC normalization to request paths before lookup.
	Normalize bool
}

// NewResolver creates a Resolver for root using the default index files.
// A nil fsys means the host filesystem.
func NewResolver(root string, fsys FileSystem) *Resolver {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Resolver{
		Root:       root,
		IndexFiles: DefaultIndexFiles,
		FS:         fsys,
	}
}

// Resolve maps requestPath onto a regular file below the document root.
//
// The path is cleaned as a rooted path before joining, so neither an absolute
// client path nor ".." segments can leave the root. If the result is a
// directory, the index files are probed in order and the first existing one
// is used; otherwise the directory itself stays the target. Anything that is
// not a regular file yields an *Error of kind NotFound.
func (r *Resolver) Resolve(requestPath string) (Target, error) {
	if r.Normalize {
		requestPath = norm.NFC.String(requestPath)
	}

	rel := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
	target := Target{Path: filepath.Join(r.Root, filepath.FromSlash(rel))}
	if rel != "" && strings.HasSuffix(requestPath, "/") {
		// Keep the trailing slash so a file named like a directory is not matched.
		target.Path += string(filepath.Separator)
	}

	info, err := r.FS.Stat(target.Path)
	if err == nil && info.IsDir() {
		for _, name := range r.IndexFiles {
			candidate := filepath.Join(target.Path, name)
			if ci, cerr := r.FS.Stat(candidate); cerr == nil {
				target.Path = candidate
				target.Fallback = true
				info = ci
				break
			}
		}
	}

	if err != nil {
		return Target{}, &Error{Kind: NotFound, Path: requestPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return Target{}, &Error{Kind: NotFound, Path: requestPath}
	}
	return target, nil
}
