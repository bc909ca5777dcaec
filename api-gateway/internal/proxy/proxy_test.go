package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Zombiepro89/socialmedia/shared/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method    string
	path      string
	query     string
	body      string
	requestID string
}

// recorder collects what an upstream received.
type recorder struct {
	mu   sync.Mutex
	seen []seenRequest
}

func (r *recorder) all() []seenRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]seenRequest(nil), r.seen...)
}

func newUpstream(t *testing.T, name string, rec *recorder) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.seen = append(rec.seen, seenRequest{
			method:    r.Method,
			path:      r.URL.Path,
			query:     r.URL.RawQuery,
			body:      string(body),
			requestID: r.Header.Get(middleware.RequestIDHeader),
		})
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", name)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"from":"` + name + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(up Upstreams) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	New(2*time.Second).RegisterRoutes(r, up)
	return r
}

func TestRoutesReachOwningService(t *testing.T) {
	var accountSeen, messageSeen recorder
	accounts := newUpstream(t, "account", &accountSeen)
	messages := newUpstream(t, "message", &messageSeen)
	router := newGateway(Upstreams{AccountServiceURL: accounts.URL, MessageServiceURL: messages.URL + "/"})

	tests := []struct {
		method string
		path   string
		owner  string
	}{
		{http.MethodPost, "/register", "account"},
		{http.MethodPost, "/login", "account"},
		{http.MethodGet, "/messages", "message"},
		{http.MethodPost, "/messages", "message"},
		{http.MethodGet, "/messages/3", "message"},
		{http.MethodPatch, "/messages/3", "message"},
		{http.MethodDelete, "/messages/3", "message"},
		{http.MethodGet, "/accounts/1/messages", "message"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"k":"v"}`)))

			assert.Equal(t, http.StatusTeapot, w.Code)
			assert.Equal(t, tt.owner, w.Header().Get("X-Upstream"))
			assert.JSONEq(t, `{"from":"`+tt.owner+`"}`, w.Body.String())
		})
	}
	assert.Len(t, accountSeen.all(), 2)
	assert.Len(t, messageSeen.all(), 6)
}

func TestForwardsRequestFaithfully(t *testing.T) {
	var rec recorder
	upstream := newUpstream(t, "message", &rec)
	router := newGateway(Upstreams{MessageServiceURL: upstream.URL})

	req := httptest.NewRequest(http.MethodPatch, "/messages/7?trace=1", strings.NewReader(`{"messageText":"hi"}`))
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	seen := rec.all()
	require.Len(t, seen, 1)
	assert.Equal(t, seenRequest{
		method:    http.MethodPatch,
		path:      "/messages/7",
		query:     "trace=1",
		body:      `{"messageText":"hi"}`,
		requestID: "req-42",
	}, seen[0])
	assert.Equal(t, []string{"req-42"}, w.Header().Values(middleware.RequestIDHeader))
}

func TestUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	router := newGateway(Upstreams{AccountServiceURL: url})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"Service unavailable"}`, w.Body.String())
}

func TestStripHopHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Connection", "keep-alive, X-Hop")
	h.Set("Keep-Alive", "timeout=5")
	h.Set("Te", "trailers")
	h.Set("X-Hop", "1")
	h.Set("Content-Type", "application/json")
	h.Set(middleware.RequestIDHeader, "req-1")

	stripHopHeaders(h)

	want := http.Header{}
	want.Set("Content-Type", "application/json")
	want.Set(middleware.RequestIDHeader, "req-1")
	assert.Equal(t, want, h)
}

func TestHopHeadersAreNotForwarded(t *testing.T) {
	var mu sync.Mutex
	var got http.Header
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()
	router := newGateway(Upstreams{AccountServiceURL: upstream.URL})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	req.Header.Set("Connection", "X-Hop")
	req.Header.Set("X-Hop", "1")
	req.Header.Set("Te", "trailers")
	req.Header.Set("X-Kept", "yes")
	router.ServeHTTP(httptest.NewRecorder(), req)

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, got)
	assert.Empty(t, got.Get("X-Hop"))
	assert.Empty(t, got.Get("Te"))
	assert.Equal(t, "yes", got.Get("X-Kept"))
}

func TestEmptyUpstreamBodyHasNoContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()
	router := newGateway(Upstreams{MessageServiceURL: upstream.URL})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/404", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
	assert.Empty(t, w.Header().Values("Content-Type"))
}
