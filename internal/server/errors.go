package server

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
)

// HTTPError is the only error kind surfaced to callers: a status code and a
// human readable detail. Err keeps the underlying cause for logging and is
// never rendered.
type HTTPError struct {
	Code   int
	Detail string
	Err    error
}

// NewHTTPError builds an HTTPError. An empty detail defaults to the
// standard status text.
func NewHTTPError(code int, detail string) *HTTPError {
	if detail == "" {
		detail = http.StatusText(code)
	}
	return &HTTPError{Code: code, Detail: detail}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Detail, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Detail)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// handlerFunc is an http.HandlerFunc that may fail. Failures go through the
// error hook.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleError(w, r, err)
		}
	}
}

// handleError is the error hook: every routed HTTP error ends up here and is
// rendered as a small HTML page carrying the same status code.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = &HTTPError{Code: http.StatusInternalServerError, Detail: http.StatusText(http.StatusInternalServerError), Err: err}
	}

	if httpErr.Code >= http.StatusInternalServerError && httpErr.Err != nil {
		s.log.Error().Err(httpErr.Err).Int("code", httpErr.Code).Str("path", r.URL.Path).Msg(httpErr.Detail)
	}
	s.log.Debug().
		Int("code", httpErr.Code).
		Str("detail", httpErr.Detail).
		Str("path", r.URL.Path).
		Msg("http error")

	s.writeHTML(w, httpErr.Code, renderError(httpErr))
}

func renderError(e *HTTPError) string {
	return fmt.Sprintf("<h1>Error %d</h1><p>%s</p>", e.Code, html.EscapeString(e.Detail))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.handleError(w, r, NewHTTPError(http.StatusNotFound, ""))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if allowed := s.allowedMethods(r.URL.Path); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	s.handleError(w, r, NewHTTPError(http.StatusMethodNotAllowed, ""))
}

// allowedMethods lists the methods registered for path, in table order.
func (s *Server) allowedMethods(path string) []string {
	var methods []string
	for _, e := range s.endpoints {
		if e.Path == path {
			methods = append(methods, e.Method)
		}
	}
	return methods
}
