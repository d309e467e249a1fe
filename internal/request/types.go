// Package request provides parsing and policy checks for HTTP/1.0 request lines.
package request

// Request represents a parsed request line.
// It is built once per connection and never modified afterwards.
type Request struct {
	// Method is the request method token (e.g., "GET").
	Method string
	// Path is the request target, expected to begin with "/".
	Path string
	// Protocol is the protocol token, either "HTTP" or "HTTP/<version>".
	Protocol string
}

// String returns the request line as it is written to the access log.
func (r Request) String() string {
	return r.Method + " " + r.Path + " " + r.Protocol
}
