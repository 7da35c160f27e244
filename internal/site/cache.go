package site

import (
	"encoding/json"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

type cacheKey struct {
	name    string
	version string
}

// Cache memoizes rendered packages by name and version. Output also depends
// on the content of every sibling used for cross-package links, so the cache
// is dropped whenever any loaded document changes (see Sync).
type Cache struct {
	mu         sync.RWMutex
	generation string
	entries    map[cacheKey]*Rendered
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*Rendered)}
}

// Sync prepares the cache for rendering docs with baseURL, dropping every
// entry when the documents (by content, not only name and version) or the
// base URL differ from the previous call.
// It reports whether entries were dropped.
func (c *Cache) Sync(docs []*apidoc.PackageDocument, baseURL string) bool {
	gen := generation(docs, baseURL)
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		return false
	}
	c.generation = gen
	dropped := len(c.entries) > 0
	c.entries = make(map[cacheKey]*Rendered)
	return dropped
}

func (c *Cache) Get(name, version string) (*Rendered, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[cacheKey{name, version}]
	return r, ok
}

func (c *Cache) Put(r *Rendered) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{r.Name, r.Version}] = r
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// generation identifies a document set by registration order, names,
// versions and content fingerprints. Edits that keep the version, as during
// watch rebuilds, still yield a new generation.
func generation(docs []*apidoc.PackageDocument, baseURL string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	for _, d := range docs {
		b.WriteByte('\n')
		b.WriteString(d.Name)
		b.WriteByte('@')
		b.WriteString(d.Version)
		b.WriteByte(' ')
		b.WriteString(documentFingerprint(d))
	}
	return b.String()
}

// documentFingerprint fingerprints the JSON encoding of doc.
func documentFingerprint(doc *apidoc.PackageDocument) string {
	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return Fingerprint(data)
}
