package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrOverBudget = errors.New("entry weight exceeds cache budget")
)

// Cache is a weighted least-recently-used cache keyed by string. Entries are
// evicted from the cold end until the total weight fits within the budget.
type Cache interface {
	// Get returns the value for key and marks it as recently used.
	Get(key string) (interface{}, bool)

	// Set stores value under key, replacing any previous entry.
	Set(key string, value interface{}, weight int) error

	// Delete removes key if present.
	Delete(key string)

	Len() int
	Weight() int
	Budget() int

	// Purge drops every entry.
	Purge()
}

type entry struct {
	newer  *entry
	older  *entry
	key    string
	value  interface{}
	weight int
}

type lru struct {
	log *logrus.Entry

	mu      sync.Mutex
	newest  *entry
	oldest  *entry
	entries map[string]*entry
	weight  int
	budget  int
}

// New returns a Cache that holds at most budget units of weight.
func New(name string, budget int) Cache {
	return &lru{
		log:     logrus.StandardLogger().WithFields(logrus.Fields{"type": "cache", "name": name}),
		entries: make(map[string]*entry),
		budget:  budget,
	}
}

func (c *lru) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	c.unlink(e)
	c.pushNewest(e)
	return e.value, true
}

func (c *lru) Set(key string, value interface{}, weight int) error {
	if weight > c.budget {
		return ErrOverBudget
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		c.remove(existing)
	}

	e := &entry{key: key, value: value, weight: weight}
	c.pushNewest(e)
	c.entries[key] = e
	c.weight += weight

	for c.weight > c.budget && c.oldest != nil {
		evicted := c.oldest
		c.remove(evicted)

		c.log.WithFields(logrus.Fields{
			"key":    evicted.key,
			"weight": evicted.weight,
			"spare":  c.budget - c.weight,
		}).Trace("evicted entry")
	}

	return nil
}

func (c *lru) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.remove(e)
	}
}

func (c *lru) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lru) Weight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *lru) Budget() int {
	return c.budget
}

func (c *lru) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.newest = nil
	c.oldest = nil
	c.entries = make(map[string]*entry)
	c.weight = 0
}

func (c *lru) remove(e *entry) {
	c.unlink(e)
	delete(c.entries, e.key)
	c.weight -= e.weight
}

func (c *lru) unlink(e *entry) {
	if e.newer != nil {
		e.newer.older = e.older
	} else {
		c.newest = e.older
	}
	if e.older != nil {
		e.older.newer = e.newer
	} else {
		c.oldest = e.newer
	}
	e.newer = nil
	e.older = nil
}

func (c *lru) pushNewest(e *entry) {
	e.older = c.newest
	if c.newest != nil {
		c.newest.newer = e
	}
	c.newest = e
	if c.oldest == nil {
		c.oldest = e
	}
}
