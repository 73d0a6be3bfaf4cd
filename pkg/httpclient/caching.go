package httpclient

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

const statusPrefixBytes = 2

// CachingClient replays fresh successful responses for requests that carry a
// Cache-Control max-age hint. Requests without a positive max-age go straight
// to the wrapped client.
type CachingClient struct {
	next  Client
	cache Cache
	log   Logger
}

// NewCachingClient wraps next with cache. A nil cache returns next unchanged.
func NewCachingClient(next Client, cache Cache, log Logger) Client {
	if cache == nil {
		return next
	}
	return &CachingClient{next: next, cache: cache, log: ensureLogger(log)}
}

// Get serves url from the cache when possible, otherwise delegates and stores 2xx responses.
func (c *CachingClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	maxAge := MaxAge(headers)
	if maxAge <= 0 {
		return c.next.Get(ctx, url, headers)
	}

	raw, found, err := c.cache.Lookup(url)
	if err != nil {
		c.log.WarnObj("response cache lookup failed", "cache_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
	}
	if found {
		if resp, ok := decodeCached(raw); ok {
			c.log.DebugObj("response cache hit", "cache_hit", map[string]any{"url": url})
			return resp, nil
		}
	}

	resp, err := c.next.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}

	if status := resp.StatusCode(); status >= 200 && status < 300 {
		if err := c.cache.Save(url, encodeCached(status, resp.Body()), maxAge); err != nil {
			c.log.WarnObj("response cache save failed", "cache_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
	return resp, nil
}

// MaxAge extracts the max-age directive from a Cache-Control header, or 0.
func MaxAge(headers map[string]string) time.Duration {
	for key, value := range headers {
		if !strings.EqualFold(key, "Cache-Control") {
			continue
		}
		for _, directive := range strings.Split(value, ",") {
			name, arg, ok := strings.Cut(strings.TrimSpace(directive), "=")
			if !ok || !strings.EqualFold(name, "max-age") {
				continue
			}
			seconds, err := strconv.Atoi(strings.Trim(arg, `"`))
			if err != nil || seconds <= 0 {
				return 0
			}
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// RevalidateHeaders builds the request headers that carry a revalidation hint.
func RevalidateHeaders(d time.Duration) map[string]string {
	seconds := int(d / time.Second)
	if seconds <= 0 {
		return map[string]string{"Cache-Control": "no-cache"}
	}
	return map[string]string{"Cache-Control": "max-age=" + strconv.Itoa(seconds)}
}

type cachedResponse struct {
	status int
	body   []byte
}

func (c *cachedResponse) Body() []byte    { return c.body }
func (c *cachedResponse) StatusCode() int { return c.status }

func encodeCached(status int, body []byte) []byte {
	buf := make([]byte, statusPrefixBytes, statusPrefixBytes+len(body))
	binary.BigEndian.PutUint16(buf, uint16(status))
	return append(buf, body...)
}

func decodeCached(raw []byte) (*cachedResponse, bool) {
	if len(raw) < statusPrefixBytes {
		return nil, false
	}
	status := int(binary.BigEndian.Uint16(raw[:statusPrefixBytes]))
	if status < 200 || status >= 300 {
		return nil, false
	}
	return &cachedResponse{status: status, body: raw[statusPrefixBytes:]}, true
}
