package template

import "sync"

// Cache holds parsed template trees keyed by load name. It is an explicit
// component owned by whoever composes renders, never a process-wide
// singleton, so independent generation runs cannot interfere.
//
// Trees are pure functions of template text, so a racing duplicate parse is
// wasteful but harmless: last writer wins and both results are equal.
type Cache struct {
	mu    sync.RWMutex
	trees map[string]*Tree
}

// NewCache creates an empty tree cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string]*Tree)}
}

// Get returns the cached tree for name, if present.
func (c *Cache) Get(name string) (*Tree, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tree, ok := c.trees[name]
	return tree, ok
}

// Put stores a parsed tree under name, replacing any previous entry.
func (c *Cache) Put(name string, tree *Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trees[name] = tree
}

// Len reports the number of cached trees.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.trees)
}
