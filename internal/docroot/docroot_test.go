package docroot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f4ah6o/httpd10/internal/response"
)

// writeTree creates files below root; names ending in "/" become directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":         "<p>home</p>",
		"lol.txt":            "lol",
		"README":             "readme",
		"docs/index.shtml":   "shtml",
		"docs/index.html":    "html",
		"docs/guide.html":    "guide",
		"both/index.txt":     "txt",
		"both/index.html":    "html",
		"empty/":             "",
		"nested/deep/a.html": "a",
	})

	tests := []struct {
		name         string
		path         string
		wantRel      string
		wantFallback bool
	}{
		{"Root uses index.html", "/", "index.html", true},
		{"Plain file", "/lol.txt", "lol.txt", false},
		{"File without extension", "/README", "README", false},
		{"Directory prefers index.html over index.shtml", "/docs/", "docs/index.html", true},
		{"Directory without trailing slash", "/docs", "docs/index.html", true},
		{"index.txt first", "/both", "both/index.txt", true},
		{"Nested file", "/nested/deep/a.html", "nested/deep/a.html", false},
		{"Double leading slash stays in root", "//lol.txt", "lol.txt", false},
		{"Parent segments cannot leave root", "/../../lol.txt", "lol.txt", false},
	}

	r := NewResolver(root, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.path, err)
			}
			want := filepath.Join(root, filepath.FromSlash(tt.wantRel))
			if got.Path != want {
				t.Errorf("Resolve(%q).Path = %q, want %q", tt.path, got.Path, want)
			}
			if got.Fallback != tt.wantFallback {
				t.Errorf("Resolve(%q).Fallback = %v, want %v", tt.path, got.Fallback, tt.wantFallback)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"lol.txt": "lol",
		"empty/":  "",
	})

	r := NewResolver(root, nil)
	for _, p := range []string{"/nope.txt", "/path/does/not/exist", "/empty", "/empty/", "/lol.txt/"} {
		_, err := r.Resolve(p)
		if KindOf(err) != NotFound {
			t.Errorf("Resolve(%q) error = %v, want kind NotFound", p, err)
		}
		var de *Error
		if !errors.As(err, &de) {
			t.Errorf("Resolve(%q) error type = %T, want *Error", p, err)
		}
	}
}

func TestResolveNormalize(t *testing.T) {
	root := t.TempDir()
	// Precomposed on disk, decomposed in the request.
	writeTree(t, root, map[string]string{"caf\u00e9.txt": "coffee"})

	r := NewResolver(root, nil)
	r.Normalize = true
	got, err := r.Resolve("/cafe\u0301.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if filepath.Base(got.Path) != "caf\u00e9.txt" {
		t.Errorf("Resolve() = %q", got.Path)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"index.html":  "html",
		"index.shtml": "plain",
		"lol.txt":     "plain",
		"README":      "plain",
		"a.HTML":      "plain",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": "hi"})

	c, err := Load(OSFileSystem{}, Target{Path: filepath.Join(root, "index.html")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(c.Body) != "hi" || c.Type != "html" {
		t.Errorf("Load() = %+v", c)
	}
}

// stubFS serves fixed stat results and read errors.
type stubFS struct {
	readErr error
}

type fileInfo struct{ name string }

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return 0 }
func (fi fileInfo) Mode() fs.FileMode  { return 0 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return false }
func (fi fileInfo) Sys() any           { return nil }

func (s stubFS) Stat(name string) (fs.FileInfo, error) {
	return fileInfo{filepath.Base(name)}, nil
}

func (s stubFS) ReadFile(name string) ([]byte, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: s.readErr}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus response.Status
	}{
		{"Permission denied", fs.ErrPermission, PermissionDenied, response.Forbidden},
		{"Vanished file", fs.ErrNotExist, NotFound, response.NotFound},
		{"Other failure", errors.New("input/output error"), Other, response.BadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("/srv", stubFS{readErr: tt.err})
			target, err := r.Resolve("/forbidden.txt")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			_, err = Load(r.FS, target)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf(%v) = %v, want %v", err, got, tt.wantKind)
			}
			if got := KindOf(err).Status(); got != tt.wantStatus {
				t.Errorf("Status() = %v, want %v", got, tt.wantStatus)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Load() error %v does not wrap %v", err, tt.err)
			}
		})
	}
}
