package alloc

import "encoding/binary"

// Pool hands out fixed-size chunks from an intrusive, index-based free
// list, grounded on the original's Pool/pool_make/pool_grow/pool_allocate/
// pool_deallocate. Every chunk is chunkSize bytes regardless of the
// requested size; a request larger than chunkSize fails.
type Pool struct {
	parent    *Heap
	chunkSize int
	capacity  int
	size      int
	firstFree int
	chunks    []byte
}

// NewPool returns a Pool of initialCapacity chunks, each chunkSize bytes,
// allocated through parent. Free chunks are linked via their first 8
// bytes holding the next free index, matching the original's in-place
// `*POOL_CHUNK(pool, i) = i + 1` linking (widened from a single byte to a
// uint64, since Go chunk indices aren't bounded to 256 the way the
// original's byte-sized link implicitly was).
func NewPool(parent *Heap, initialCapacity, chunkSize int) *Pool {
	p := &Pool{parent: parent, chunkSize: chunkSize, capacity: initialCapacity}
	if initialCapacity > 0 {
		p.chunks = parent.allocate(initialCapacity * chunkSize)
		p.linkFrom(0)
	}
	return p
}

func (p *Pool) chunkAt(i int) []byte {
	return p.chunks[i*p.chunkSize : (i+1)*p.chunkSize]
}

func (p *Pool) linkFrom(start int) {
	for i := start; i < p.capacity; i++ {
		binary.LittleEndian.PutUint64(p.chunkAt(i), uint64(i+1))
	}
}

func (p *Pool) grow(size int) bool {
	if size > p.chunkSize {
		return false
	}
	newCapacity := p.capacity
	if newCapacity == 0 {
		newCapacity = 8
	} else {
		newCapacity *= 2
	}
	for p.size+1 > newCapacity {
		newCapacity *= 2
	}
	p.chunks = p.parent.reallocate(newCapacity*p.chunkSize, p.chunks)
	oldCapacity := p.capacity
	p.capacity = newCapacity
	p.linkFrom(oldCapacity)
	p.firstFree = oldCapacity
	return true
}

func (p *Pool) allocate(size int) []byte {
	if size > p.chunkSize {
		return nil
	}
	if p.firstFree == p.capacity {
		if !p.grow(size) {
			return nil
		}
	}
	free := p.firstFree
	p.firstFree = int(binary.LittleEndian.Uint64(p.chunkAt(free)))
	p.size++
	return p.chunkAt(free)
}

// reallocate is always a no-op returning old unchanged, matching the
// original's pool_reallocate (a pool's chunks are fixed size).
func (p *Pool) reallocate(size int, old []byte) []byte { return old }

func (p *Pool) deallocate(old []byte) {
	if len(old) == 0 {
		return
	}
	index := -1
	for i := 0; i < p.capacity; i++ {
		if &p.chunkAt(i)[0] == &old[0] {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}
	binary.LittleEndian.PutUint64(p.chunkAt(index), uint64(p.firstFree))
	p.firstFree = index
	p.size--
}
