package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer()
	existing := uuid.NewString()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "generated when missing"},
		{name: "kept when valid", header: existing, keep: true},
		{name: "replaced when invalid", header: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := s.requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			header := http.Header{}
			if tt.header != "" {
				header.Set(RequestIDHeader, tt.header)
			}
			w := do(t, h, http.MethodGet, "/", header)

			got := w.Header().Get(RequestIDHeader)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, got, seen)
			if tt.keep {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(WithSystemReader(fakeSystem{sys: testSystem}))
	h := s.Handler()

	do(t, h, http.MethodGet, "/health", nil)
	do(t, h, http.MethodGet, "/missing", nil)

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "info_http_requests_total")
	assert.Contains(t, body, `route="/health"`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, "info_process_start_time_seconds")
	assert.True(t, strings.Contains(body, `info_build_info{go_version=`))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer()

	w := do(t, s.Handler(), http.MethodOptions, "/health", http.Header{
		"Origin":                        {"https://example.com"},
		"Access-Control-Request-Method": {"GET"},
	})

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
