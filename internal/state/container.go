// Package state is the application-state container backing the client's
// cached profile and language preference. Values are plain JSON under fixed
// keys, no versioning.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Fixed storage keys shared with the web client.
const (
	KeyUser     = "thakirni_user"
	KeyLanguage = "thakirni_language"
)

var (
	// ErrNotInitialized is returned when a container is used before Open.
	// This is the explicit form of the "must be wrapped by provider"
	// precondition.
	ErrNotInitialized = errors.New("state container not initialized")

	// ErrKeyNotFound means no value has been stored under the key.
	ErrKeyNotFound = errors.New("state key not found")
)

// Container persists JSON values under named keys and notifies subscribers
// on change.
type Container struct {
	mu          sync.Mutex
	dir         string
	initialized bool
	subscribers map[string][]chan json.RawMessage
}

// Open prepares a container rooted at dir, creating it if needed.
func Open(dir string) (*Container, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state: open %s: %w", dir, err)
	}
	return &Container{
		dir:         dir,
		initialized: true,
		subscribers: make(map[string][]chan json.RawMessage),
	}, nil
}

func (c *Container) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Set stores v as JSON under key and notifies subscribers.
func (c *Container) Set(key string, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return ErrNotInitialized
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("state: marshal %s: %w", key, err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("state: write %s: %w", key, err)
	}

	for _, ch := range c.subscribers[key] {
		select {
		case ch <- json.RawMessage(data):
		default:
		}
	}
	return nil
}

// Get loads the JSON stored under key into out.
func (c *Container) Get(key string, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return ErrNotInitialized
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("state: read %s: %w", key, err)
	}
	return json.Unmarshal(data, out)
}

// Delete removes the value under key. Deleting an absent key is a no-op.
func (c *Container) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return ErrNotInitialized
	}
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("state: delete %s: %w", key, err)
	}
	return nil
}

// Subscribe returns a channel receiving the raw JSON of every subsequent
// Set on key. Slow consumers miss updates rather than blocking writers.
func (c *Container) Subscribe(key string) (<-chan json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	ch := make(chan json.RawMessage, 1)
	c.subscribers[key] = append(c.subscribers[key], ch)
	return ch, nil
}
