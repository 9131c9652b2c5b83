package server

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader     = "X-Request-Id"
	authorizationHeader = "Authorization"
)

// handleConnection serves exactly one request, then closes conn.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	requestID := uuid.NewString()
	log := zap.S().Named("connection").With("request_id", requestID, "remote", conn.RemoteAddr().String())

	if err := conn.SetDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
		log.Warnw("failed to set read deadline", "error", err)
	}

	req, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Debug("no request line received")
			return
		}
		log.Debugw("failed to read request", "error", err)
		s.write(conn, log, badRequest(), nil)
		return
	}
	req.RemoteAddr = conn.RemoteAddr().String()

	w := newResponseWriter()
	w.Header().Set(requestIDHeader, requestID)
	if s.cfg.ResponseAuthorization != "" {
		w.Header().Set(authorizationHeader, s.cfg.ResponseAuthorization)
	}
	s.handler.ServeHTTP(w, req)

	// the handler may have slept past the initial deadline
	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
		log.Warnw("failed to set write deadline", "error", err)
	}
	s.write(conn, log, w, req)
}

func (s *Server) write(conn net.Conn, log *zap.SugaredLogger, w *responseWriter, req *http.Request) {
	if err := w.response(req).Write(conn); err != nil {
		log.Warnw("failed to write response", "error", err)
	}
}

// responseWriter buffers a whole response so it can be sent with an exact Content-Length.
type responseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func badRequest() *responseWriter {
	w := newResponseWriter()
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(http.StatusText(http.StatusBadRequest)))
	return w
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

func (w *responseWriter) response(req *http.Request) *http.Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	return &http.Response{
		StatusCode:    status,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        w.header,
		Body:          io.NopCloser(bytes.NewReader(w.body.Bytes())),
		ContentLength: int64(w.body.Len()),
		Close:         true,
		Request:       req,
	}
}
