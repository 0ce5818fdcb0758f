package buffer

import "sync"

// Pool provides sync.Pool-based Scratch reuse to reduce GC pressure when
// the same processor runs many times.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Scratch{}
			},
		},
	}
}

// Get returns a Scratch. Callers must return it via Put when done.
func (p *Pool) Get() *Scratch {
	return p.pool.Get().(*Scratch)
}

// Put returns s to the pool. The caller must not use s or any slice
// obtained from it afterwards.
func (p *Pool) Put(s *Scratch) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
