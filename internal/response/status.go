// Package response builds and serializes the minimal HTTP/1.0 responses the server sends.
package response

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Status is one of the four response statuses the server can send.
// Values outside OK, BadRequest, Forbidden and NotFound cannot be constructed
// outside this package; the zero Status is invalid.
type Status struct {
	code   int
	reason string
}

var (
	OK         = Status{200, "OK"}
	BadRequest = Status{400, "Bad Request"}
	Forbidden  = Status{403, "Forbidden"}
	NotFound   = Status{404, "Not Found"}
)

// errorBodies holds the fixed markup sent with each error status.
var errorBodies = map[Status][]byte{
	BadRequest: heading(BadRequest),
	Forbidden:  heading(Forbidden),
	NotFound:   heading(NotFound),
}

func heading(s Status) []byte {
	h1 := &html.Node{Type: html.ElementNode, DataAtom: atom.H1, Data: "h1"}
	h1.AppendChild(&html.Node{Type: html.TextNode, Data: s.String()})

	var buf bytes.Buffer
	if err := html.Render(&buf, h1); err != nil {
		panic(fmt.Sprintf("render %s body: %v", s, err))
	}
	return buf.Bytes()
}

// Code returns the numeric status code.
func (s Status) Code() int { return s.code }

// Reason returns the reason phrase written on the status line.
func (s Status) Reason() string { return s.reason }

// String returns "<code> <reason>", e.g. "404 Not Found".
func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.code, s.reason)
}

// IsError reports whether s is one of the error statuses.
func (s Status) IsError() bool {
	_, ok := errorBodies[s]
	return ok
}

// ErrorBody returns the fixed HTML snippet for an error status.
func ErrorBody(s Status) []byte {
	body, ok := errorBodies[s]
	if !ok {
		panic(fmt.Sprintf("response: no error body for status %q", s.String()))
	}
	return body
}

func (s Status) mustBeValid() {
	if s != OK && !s.IsError() {
		panic(fmt.Sprintf("response: invalid status %+v", s))
	}
}
