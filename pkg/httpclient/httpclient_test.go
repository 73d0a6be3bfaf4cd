package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetForwardsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Cache-Control"); got != "max-age=60" {
			t.Fatalf("missing cache-control header, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	resp, err := NewRestyClient(0).Get(context.Background(), srv.URL, RevalidateHeaders(time.Minute))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("unexpected body: %s", resp.Body())
	}
}

func TestRestyClientGetHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRestyClient(time.Second).Get(ctx, srv.URL, nil); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

type countingClient struct {
	calls  int
	status int
	body   string
	err    error
}

type stubResponse struct {
	status int
	body   []byte
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.status }

func (c *countingClient) Get(context.Context, string, map[string]string) (Response, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return stubResponse{status: c.status, body: []byte(c.body)}, nil
}

type mapCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Lookup(key string) ([]byte, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mapCache) Save(key string, value []byte, ttl time.Duration) error {
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestCachingClientReplaysSuccessfulResponses(t *testing.T) {
	next := &countingClient{status: http.StatusOK, body: `{"items":[]}`}
	cache := newMapCache()
	client := NewCachingClient(next, cache, nil)
	headers := RevalidateHeaders(60 * time.Second)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), "http://api/guitars", headers)
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		if resp.StatusCode() != http.StatusOK || string(resp.Body()) != `{"items":[]}` {
			t.Fatalf("unexpected response #%d: %d %s", i, resp.StatusCode(), resp.Body())
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", next.calls)
	}
	if cache.ttls["http://api/guitars"] != 60*time.Second {
		t.Fatalf("expected ttl from max-age, got %v", cache.ttls["http://api/guitars"])
	}
}

func TestCachingClientSkipsNonSuccess(t *testing.T) {
	next := &countingClient{status: http.StatusInternalServerError}
	client := NewCachingClient(next, newMapCache(), nil)
	headers := RevalidateHeaders(60 * time.Second)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), "http://api/guitars", headers)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if resp.StatusCode() != http.StatusInternalServerError {
			t.Fatalf("expected 500 passthrough, got %d", resp.StatusCode())
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected every failing request to reach upstream, got %d calls", next.calls)
	}
}

func TestCachingClientBypassesWithoutMaxAge(t *testing.T) {
	next := &countingClient{status: http.StatusOK, body: "{}"}
	client := NewCachingClient(next, newMapCache(), nil)

	for i := 0; i < 2; i++ {
		if _, err := client.Get(context.Background(), "http://api/guitars", nil); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected bypass, got %d calls", next.calls)
	}
}

func TestCachingClientPropagatesTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	client := NewCachingClient(&countingClient{err: boom}, newMapCache(), nil)

	_, err := client.Get(context.Background(), "http://api/guitars", RevalidateHeaders(time.Minute))
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewCachingClientNilCache(t *testing.T) {
	next := &countingClient{}
	if got := NewCachingClient(next, nil, nil); got != Client(next) {
		t.Fatalf("expected next client to be returned unchanged")
	}
}

func TestMaxAge(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    time.Duration
	}{
		{name: "missing", want: 0},
		{name: "simple", headers: map[string]string{"Cache-Control": "max-age=60"}, want: time.Minute},
		{name: "lowercase key", headers: map[string]string{"cache-control": "public, max-age=5"}, want: 5 * time.Second},
		{name: "no-cache", headers: map[string]string{"Cache-Control": "no-cache"}, want: 0},
		{name: "invalid", headers: map[string]string{"Cache-Control": "max-age=soon"}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxAge(tc.headers); got != tc.want {
				t.Fatalf("MaxAge() = %v, want %v", got, tc.want)
			}
		})
	}
}
