// Package intern implements a string interning pool: repeated source
// lexemes (identifiers, string literals) are stored once in an append-only
// buffer and referred to everywhere else by a small integer ID.
package intern

import (
	"sort"
	"sync"

	"github.com/dolthub/swiss"
)

// ID identifies a string previously stored in a Pool. It is also the byte
// offset at which the string starts in the pool's backing buffer.
type ID uint32

// Pool interns strings into a single growing buffer, deduplicating by
// content via an open-addressed hash index.
type Pool struct {
	mu     sync.RWMutex
	buf    []byte
	starts []uint32 // start offset of each interned string, strictly increasing
	index  *swiss.Map[string, ID]
}

// NewPool returns an empty Pool with initial index capacity for size
// distinct strings.
func NewPool(size int) *Pool {
	if size < 16 {
		size = 16
	}
	return &Pool{index: swiss.NewMap[string, ID](uint32(size))}
}

// Intern returns the ID for s, storing it in the pool on first sight.
func (p *Pool) Intern(s string) ID {
	p.mu.RLock()
	if id, ok := p.index.Get(s); ok {
		p.mu.RUnlock()
		return id
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	// another goroutine may have interned s while we waited for the lock.
	if id, ok := p.index.Get(s); ok {
		return id
	}

	id := ID(len(p.buf))
	p.starts = append(p.starts, uint32(id))
	p.buf = append(p.buf, s...)
	p.index.Put(s, id)
	return id
}

// Lookup returns the string stored under id. It panics if id was never
// returned by Intern on this pool.
func (p *Pool) Lookup(id ID) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i := sort.Search(len(p.starts), func(i int) bool { return p.starts[i] >= uint32(id) })
	if i >= len(p.starts) || p.starts[i] != uint32(id) {
		panic("intern: unknown ID")
	}
	end := len(p.buf)
	if i+1 < len(p.starts) {
		end = int(p.starts[i+1])
	}
	return string(p.buf[id:end])
}

// Len returns the number of distinct strings interned so far.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.starts)
}

// Size returns the total number of bytes held in the backing buffer.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.buf)
}
