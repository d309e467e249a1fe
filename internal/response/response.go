package response

import (
	"bytes"
	"io"
	"strconv"
)

// Version is the protocol written on every status line.
const Version = "HTTP/1.0"

// Response is a fully built reply. ContentType and ContentLength are set only
// for OK; for error statuses Body is the fixed markup from ErrorBody.
type Response struct {
	Status        Status
	ServerTag     string
	ContentType   string
	ContentLength int
	Body          []byte
}

// Success builds a 200 response carrying body as "text/<contentType>".
func Success(serverTag, contentType string, body []byte) Response {
	return Response{
		Status:        OK,
		ServerTag:     serverTag,
		ContentType:   contentType,
		ContentLength: len(body),
		Body:          body,
	}
}

// Error builds a response for one of the error statuses. It panics if s is not one.
func Error(serverTag string, s Status) Response {
	return Response{
		Status:    s,
		ServerTag: serverTag,
		Body:      ErrorBody(s),
	}
}

// Build dispatches to Success or Error depending on s. contentType and body
// are ignored for error statuses.
func Build(serverTag string, s Status, contentType string, body []byte) Response {
	if s == OK {
		return Success(serverTag, contentType, body)
	}
	return Error(serverTag, s)
}

// Serialize returns the wire form of r:
//
//	HTTP/1.0 200 OK\n<tag>\ntext/<type>\n<length>\n\n<body>
//	HTTP/1.0 <code> <reason>\n<tag>\n\n<markup>
//
// Lines are bare values, not "Name: value" header fields.
func (r Response) Serialize() []byte {
	r.Status.mustBeValid()

	var buf bytes.Buffer
	buf.Grow(len(r.Body) + len(r.ServerTag) + 64)
	buf.WriteString(Version)
	buf.WriteByte(' ')
	buf.WriteString(r.Status.String())
	buf.WriteByte('\n')
	buf.WriteString(r.ServerTag)
	buf.WriteByte('\n')
	if r.Status == OK {
		buf.WriteString("text/")
		buf.WriteString(r.ContentType)
		buf.WriteByte('\n')
		buf.WriteString(strconv.Itoa(r.ContentLength))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(r.Body)
	return buf.Bytes()
}

// WriteTo writes the serialized response to w in a single call.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Serialize())
	return int64(n), err
}
