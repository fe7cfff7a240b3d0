// Package catalog resolves the message catalog of a bundle or logger
// declaration: the key to template mapping after inheritance and overrides.
package catalog

import "iter"

// Entry is one catalog mapping.
type Entry struct {
	Key      string
	Template string
}

// Catalog is an insertion-ordered key to template mapping. Setting an existing
// key replaces its template and keeps its position.
type Catalog struct {
	keys   []string
	values map[string]string
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{values: make(map[string]string)}
}

// Set records template under key.
func (c *Catalog) Set(key, template string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = template
}

// Get returns the template for key.
func (c *Catalog) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.keys) }

// Keys returns the keys in iteration order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// All iterates entries in order.
func (c *Catalog) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Entries returns a snapshot of the entries in order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for k, v := range c.All() {
		out = append(out, Entry{Key: k, Template: v})
	}
	return out
}

// Merge sets every entry of other into c, in other's order.
func (c *Catalog) Merge(other *Catalog) {
	for k, v := range other.All() {
		c.Set(k, v)
	}
}
