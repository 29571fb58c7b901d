// Package ai fetches best-effort word illustrations from the OpenAI image
// API. The learning flow never depends on its outcome: a missing API key, a
// network failure, or a rate limit all resolve to "no illustration".
package ai

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	defaultAPIURL = "https://api.openai.com/v1/images/generations"
	// Minimum spacing between remote calls.
	defaultMinSpacing = 10 * time.Second
	// Extended pause after a 429 from the remote service.
	defaultCooldown = 5 * time.Minute
)

// ImageCache stores fetched illustrations keyed by word.
type ImageCache interface {
	Get(word string) ([]byte, bool, error)
	Put(word string, image []byte) error
}

// Illustrator is a rate-limited client for the image generation API.
type Illustrator struct {
	apiKey string
	apiURL string
	client *http.Client
	cache  ImageCache
	now    func() time.Time

	mu            sync.Mutex
	lastCall      time.Time
	cooldownUntil time.Time
	inFlight      map[string]bool
}

// New creates an illustrator reading OPENAI_API_KEY from the environment.
// An absent key yields a disabled client that always returns nothing.
func New(cache ImageCache) *Illustrator {
	return &Illustrator{
		apiKey:   os.Getenv("OPENAI_API_KEY"),
		apiURL:   defaultAPIURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
		now:      time.Now,
		inFlight: map[string]bool{},
	}
}

// Enabled reports whether an API key is configured.
func (c *Illustrator) Enabled() bool {
	return c.apiKey != ""
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Cached returns a previously generated illustration without ever calling
// the remote API.
func (c *Illustrator) Cached(word string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	image, ok, err := c.cache.Get(word)
	if err != nil || !ok {
		return nil, false
	}
	return image, true
}

// Fetch returns an illustration for the word, serving from cache when
// possible. It returns (nil, false) whenever nothing is available: disabled
// client, rate limited, in-flight duplicate, or remote failure.
func (c *Illustrator) Fetch(word, definition string) ([]byte, bool) {
	if c.cache != nil {
		if image, ok, err := c.cache.Get(word); err == nil && ok {
			return image, true
		}
	}

	if !c.Enabled() || !c.acquire(word) {
		return nil, false
	}
	defer c.release(word)

	image, err := c.generate(word, definition)
	if err != nil {
		log.Printf("Error fetching illustration for %q: %v", word, err)
		return nil, false
	}

	if c.cache != nil {
		if err := c.cache.Put(word, image); err != nil {
			log.Printf("Error caching illustration for %q: %v", word, err)
		}
	}
	return image, true
}

// Prefetch kicks off a fire-and-forget fetch so a later Fetch hits the cache.
func (c *Illustrator) Prefetch(word, definition string) {
	go c.Fetch(word, definition)
}

// acquire enforces the per-word dedup and the global call spacing. It
// reports whether a remote call may proceed now.
func (c *Illustrator) acquire(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.inFlight[word] || now.Before(c.cooldownUntil) || now.Sub(c.lastCall) < defaultMinSpacing {
		return false
	}
	c.inFlight[word] = true
	c.lastCall = now
	return true
}

func (c *Illustrator) release(word string) {
	c.mu.Lock()
	delete(c.inFlight, word)
	c.mu.Unlock()
}

func (c *Illustrator) generate(word, definition string) ([]byte, error) {
	prompt := fmt.Sprintf(
		"A friendly, colourful cartoon illustration for a child's vocabulary app of the word '%s', meaning: %s. No text in the image.",
		word, definition,
	)

	requestData, err := json.Marshal(imageRequest{
		Model:          "dall-e-2",
		Prompt:         prompt,
		N:              1,
		Size:           "256x256",
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.mu.Lock()
		c.cooldownUntil = c.now().Add(defaultCooldown)
		c.mu.Unlock()
		return nil, fmt.Errorf("rate limited, cooling down")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var response imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("no image data returned")
	}

	image, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %v", err)
	}
	return image, nil
}
