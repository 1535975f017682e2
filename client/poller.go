package client

import (
	"context"
	"sync"
	"time"
)

// Latest holds the most recent value produced by concurrent refreshes.
// Each refresh reserves a sequence number up front with NextSeq; a
// slower, older response arriving after a newer one is dropped by the
// guard in Store so the visible state never moves backwards.
type Latest[T any] struct {
	mu   sync.Mutex
	seq  uint64
	next uint64
	val  T
	set  bool
}

func (l *Latest[T]) NextSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	return l.next
}

// Store records val if seq is newer than the last stored value. It
// reports whether the value was accepted.
func (l *Latest[T]) Store(seq uint64, val T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.seq {
		return false
	}
	l.seq = seq
	l.val = val
	l.set = true
	return true
}

func (l *Latest[T]) Load() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.val, l.set
}

// Poller periodically invokes a refresh function, delivering successful
// results to OnUpdate. A failed refresh calls OnError and keeps the last
// delivered state; the ticker keeps running so transient server or
// network faults heal on the next cycle.
type Poller[T any] struct {
	Interval time.Duration
	Refresh  func(ctx context.Context) (T, error)
	OnUpdate func(T)
	OnError  func(error)

	latest Latest[T]
}

// Run polls until ctx is cancelled. The first refresh happens
// immediately rather than one interval in.
func (p *Poller[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	seq := p.latest.NextSeq()

	val, err := p.Refresh(ctx)
	if err != nil {
		if p.OnError != nil && ctx.Err() == nil {
			p.OnError(err)
		}
		return
	}

	if p.latest.Store(seq, val) && p.OnUpdate != nil {
		p.OnUpdate(val)
	}
}

// Last returns the most recently delivered state, if any.
func (p *Poller[T]) Last() (T, bool) {
	return p.latest.Load()
}
