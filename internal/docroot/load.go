package docroot

import (
	"path/filepath"
)

// Content is a file loaded for a successful response.
type Content struct {
	Body []byte
	// Type is the subtype written after "text/": "html" or "plain".
	Type string
}

// ContentType derives the content subtype from the file extension alone.
func ContentType(name string) string {
	if filepath.Ext(name) == ".html" {
		return "html"
	}
	return "plain"
}

// Load reads the whole target file. Failures are returned as *Error and are
// terminal for the request.
func Load(fsys FileSystem, target Target) (Content, error) {
	body, err := fsys.ReadFile(target.Path)
	if err != nil {
		return Content{}, &Error{Kind: KindOf(err), Path: target.Path, Err: err}
	}
	return Content{Body: body, Type: ContentType(target.Path)}, nil
}
