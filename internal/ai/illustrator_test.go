package ai

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	images map[string][]byte
	puts   int
}

func newMemCache() *memCache {
	return &memCache{images: map[string][]byte{}}
}

func (m *memCache) Get(word string) ([]byte, bool, error) {
	image, ok := m.images[word]
	return image, ok, nil
}

func (m *memCache) Put(word string, image []byte) error {
	m.puts++
	m.images[word] = image
	return nil
}

func newTestIllustrator(apiURL string, cache ImageCache) *Illustrator {
	return &Illustrator{
		apiKey:   "test-key",
		apiURL:   apiURL,
		client:   &http.Client{Timeout: time.Second},
		cache:    cache,
		now:      time.Now,
		inFlight: map[string]bool{},
	}
}

func imageServer(calls *int32, image []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		fmt.Fprintf(w, `{"data":[{"b64_json":"%s"}]}`, base64.StdEncoding.EncodeToString(image))
	}))
}

func TestDisabledWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := New(newMemCache())

	assert.False(t, c.Enabled())
	image, ok := c.Fetch("simmer", "to cook gently")
	assert.False(t, ok)
	assert.Nil(t, image)
}

func TestFetchGeneratesAndCaches(t *testing.T) {
	var calls int32
	want := []byte("fake-png-bytes")
	server := imageServer(&calls, want)
	defer server.Close()

	cache := newMemCache()
	c := newTestIllustrator(server.URL, cache)

	image, ok := c.Fetch("simmer", "to cook gently")
	require.True(t, ok)
	assert.Equal(t, want, image)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, cache.puts)
}

func TestFetchServesFromCacheWithoutRemoteCall(t *testing.T) {
	var calls int32
	server := imageServer(&calls, []byte("unused"))
	defer server.Close()

	cache := newMemCache()
	cache.images["simmer"] = []byte("cached")
	c := newTestIllustrator(server.URL, cache)

	image, ok := c.Fetch("simmer", "to cook gently")
	require.True(t, ok)
	assert.Equal(t, []byte("cached"), image)
	assert.Zero(t, atomic.LoadInt32(&calls))

	cached, ok := c.Cached("simmer")
	assert.True(t, ok)
	assert.Equal(t, []byte("cached"), cached)
	_, ok = c.Cached("gravity")
	assert.False(t, ok)
}

func TestMinimumSpacingBetweenCalls(t *testing.T) {
	var calls int32
	server := imageServer(&calls, []byte("img"))
	defer server.Close()

	c := newTestIllustrator(server.URL, newMemCache())
	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	_, ok := c.Fetch("simmer", "d")
	require.True(t, ok)

	// Too soon for a different word
	_, ok = c.Fetch("whisk", "d")
	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// After the spacing window the call goes through
	current = current.Add(defaultMinSpacing)
	_, ok = c.Fetch("whisk", "d")
	assert.True(t, ok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimitTriggersCooldown(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestIllustrator(server.URL, newMemCache())
	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	_, ok := c.Fetch("simmer", "d")
	assert.False(t, ok)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// The plain spacing window has passed but the cooldown still blocks
	current = current.Add(defaultMinSpacing + time.Second)
	_, ok = c.Fetch("simmer", "d")
	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Past the cooldown the client recovers
	current = current.Add(defaultCooldown)
	_, ok = c.Fetch("simmer", "d")
	assert.False(t, ok, "server still rate limits")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRemoteErrorSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestIllustrator(server.URL, newMemCache())
	image, ok := c.Fetch("simmer", "d")
	assert.False(t, ok)
	assert.Nil(t, image)
}
