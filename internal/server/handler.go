// Package server accepts connections and runs the request pipeline for each one.
package server

import (
	"bufio"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/f4ah6o/httpd10/internal/accesslog"
	"github.com/f4ah6o/httpd10/internal/docroot"
	"github.com/f4ah6o/httpd10/internal/request"
	"github.com/f4ah6o/httpd10/internal/response"
)

// Handler runs the request pipeline for a single connection.
type Handler struct {
	Resolver  *docroot.Resolver
	AccessLog *accesslog.Logger
	ServerTag string
	// ReadTimeout bounds reading the request line and headers. Zero means no deadline.
	ReadTimeout time.Duration
	// Diag receives diagnostics. Nil means log.Default().
	Diag *log.Logger
}

func (h *Handler) diag() *log.Logger {
	if h.Diag == nil {
		return log.Default()
	}
	return h.Diag
}

// Respond validates, resolves and loads req and always returns a response.
func (h *Handler) Respond(req request.Request) response.Response {
	if request.Validate(req) != request.Valid {
		return response.Error(h.ServerTag, response.BadRequest)
	}

	target, err := h.Resolver.Resolve(req.Path)
	if err != nil {
		return response.Error(h.ServerTag, docroot.KindOf(err).Status())
	}

	content, err := docroot.Load(h.Resolver.FS, target)
	if err != nil {
		return response.Error(h.ServerTag, docroot.KindOf(err).Status())
	}
	return response.Success(h.ServerTag, content.Type, content.Body)
}

// ServeConn handles one connection and closes it. A connection whose first
// line does not parse is closed without a response or access record.
func (h *Handler) ServeConn(c net.Conn) {
	w := &worker{
		h:    h,
		id:   uuid.NewString(),
		conn: c,
		r:    bufio.NewReader(c),
	}
	for state := readRequestLine; state != nil; {
		state = state(w)
	}
}

// worker carries per-connection state between stateFuncs.
type worker struct {
	h    *Handler
	id   string
	conn net.Conn
	r    *bufio.Reader
	line string
	req  request.Request
	res  response.Response
}

type stateFunc func(*worker) stateFunc

func (w *worker) logf(format string, args ...any) {
	w.h.diag().Printf("conn %s: "+format, append([]any{w.id}, args...)...)
}

// readLine returns one line without its terminator. A final line cut off by
// EOF is returned without error.
func (w *worker) readLine() (string, error) {
	line, err := w.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// state funcs

func readRequestLine(w *worker) stateFunc {
	if w.h.ReadTimeout > 0 {
		w.conn.SetReadDeadline(time.Now().Add(w.h.ReadTimeout))
	}
	for {
		line, err := w.readLine()
		if err != nil {
			if err != io.EOF {
				w.logf("read request line: %v", err)
			}
			return closeConn
		}
		if line != "" {
			w.line = line
			return skipHeaders
		}
	}
}

func skipHeaders(w *worker) stateFunc {
	for {
		line, err := w.readLine()
		if err != nil || line == "" {
			return parseRequest
		}
	}
}

func parseRequest(w *worker) stateFunc {
	req, err := request.Parse(w.line)
	if err != nil {
		w.logf("%v", err)
		return closeConn
	}
	w.req = req
	return handleRequest
}

func handleRequest(w *worker) stateFunc {
	w.res = w.h.Respond(w.req)
	return sendResponse
}

func sendResponse(w *worker) stateFunc {
	if _, err := w.res.WriteTo(w.conn); err != nil {
		w.logf("write response: %v", err)
	}
	return logRequest
}

func logRequest(w *worker) stateFunc {
	if w.h.AccessLog == nil {
		return closeConn
	}
	if err := w.h.AccessLog.Log(accesslog.NewRecord(w.req, w.res.Status.Code())); err != nil {
		w.logf("%v", err)
	}
	return closeConn
}

func closeConn(w *worker) stateFunc {
	if err := w.conn.Close(); err != nil {
		w.logf("close: %v", err)
	}
	return nil
}
