// Package assets locates the files the server hands to browsers: the client
// bundle under the package directory and everything below /assets.
//
// A Source opens files by slash-separated name, either from disk or from an
// S3 bucket. A Resolver maps bundle names to their fingerprinted versions
// when the build wrote a manifest.json next to them:
//
//	{
//	  "chatbot.wasm": "chatbot.3f9a1c2b.wasm",
//	  "chatbot.js": "chatbot.77d0e4a1.js"
//	}
package assets

import (
	"encoding/json"
	"os"
	"sync"
)

// ManifestFile is the manifest name inside the package directory.
const ManifestFile = "manifest.json"

// Manifest maps source asset names to fingerprinted names. It is safe for
// concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted name for source, or source itself when
// the manifest has no entry.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Set adds or updates an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
