package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRequestLine is returned when a request line does not contain
// exactly three whitespace-separated tokens.
var ErrMalformedRequestLine = errors.New("malformed request line")

// Parse splits a raw request line into method, path and protocol.
//
// Parsing is purely structural: any three whitespace-separated tokens are accepted
// and returned verbatim. Surrounding whitespace, including the line terminator, is ignored.
func Parse(line string) (Request, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return Request{}, fmt.Errorf("%w: got %d tokens", ErrMalformedRequestLine, len(tokens))
	}
	return Request{
		Method:   tokens[0],
		Path:     tokens[1],
		Protocol: tokens[2],
	}, nil
}
