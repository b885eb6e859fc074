// Package cache provides the hash-addressed containers used to remember
// results of expensive lookups, together with the store contract and an
// in-memory LRU store.
//
// A Container holds named entries and an append-only list of dependent
// hashes. Purging a container purges its dependents with it, which is how
// a change to an entity invalidates every check result that referenced it.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/teranos/semval/errors"
)

// Key derives a container hash from a namespace and identifying parts.
func Key(namespace string, parts ...string) string {
	sum := xxhash.Sum64String(strings.Join(parts, "\x1f"))
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(sum)
		sum >>= 8
	}
	return namespace + ":" + hex.EncodeToString(buf[:])
}

// EntityKey is the container hash holding the invalidation links of the
// entity whose root hashes to rootHash.
func EntityKey(rootHash string) string {
	return Key("entity", rootHash)
}

// Container is a bag of JSON-encoded named entries.
type Container struct {
	Hash    string                     `json:"hash"`
	Entries map[string]json.RawMessage `json:"entries,omitempty"`
	Linked  []string                   `json:"linked,omitempty"`
}

// NewContainer returns an empty container for hash.
func NewContainer(hash string) *Container {
	return &Container{Hash: hash}
}

// Has reports whether the entry key is present.
func (c *Container) Has(key string) bool {
	_, ok := c.Entries[key]
	return ok
}

// Get decodes entry key into dst. It returns false when the entry is absent.
func (c *Container) Get(key string, dst any) (bool, error) {
	raw, ok := c.Entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, errors.Wrapf(err, "decode cache entry %s/%s", c.Hash, key)
	}
	return true, nil
}

// Set encodes v under key, replacing any previous entry.
func (c *Container) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode cache entry %s/%s", c.Hash, key)
	}
	if c.Entries == nil {
		c.Entries = make(map[string]json.RawMessage)
	}
	c.Entries[key] = raw
	return nil
}

// Delete removes entry key.
func (c *Container) Delete(key string) {
	delete(c.Entries, key)
}

// Link records hash as dependent on c. Hashes are kept once, in insertion
// order.
func (c *Container) Link(hash string) {
	if hash == "" || hash == c.Hash || slices.Contains(c.Linked, hash) {
		return
	}
	c.Linked = append(c.Linked, hash)
}

// IsEmpty reports whether the container carries nothing worth saving.
func (c *Container) IsEmpty() bool {
	return len(c.Entries) == 0 && len(c.Linked) == 0
}

// Clone returns a deep copy.
func (c *Container) Clone() *Container {
	out := &Container{Hash: c.Hash, Linked: slices.Clone(c.Linked)}
	if c.Entries != nil {
		out.Entries = make(map[string]json.RawMessage, len(c.Entries))
		for k, v := range c.Entries {
			out.Entries[k] = slices.Clone(v)
		}
	}
	return out
}
