// Package status carries short user-facing notices from handlers to the view.
package status

import (
	"context"
	"sync"
	"time"
)

// Notice is one status message. An empty Message clears the status line.
type Notice struct {
	Message   string
	Timestamp time.Time
}

type Handler func(Notice)

// Bus delivers notices to subscribers on a worker goroutine and clears a
// notice once it has been current for the configured TTL.
type Bus struct {
	subscribers []Handler
	mu          sync.RWMutex
	buffer      chan Notice
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once

	ttl     time.Duration
	current Notice
	seq     uint64
	timer   *time.Timer
}

func NewBus(bufferSize int, ttl time.Duration) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		buffer: make(chan Notice, bufferSize),
		ctx:    ctx,
		cancel: cancel,
		ttl:    ttl,
	}

	bus.startWorker()
	return bus
}

// Publish never blocks; when the buffer is full the notice is dropped.
func (b *Bus) Publish(message string) {
	notice := Notice{Message: message, Timestamp: time.Now()}

	b.mu.Lock()
	if b.ctx.Err() != nil {
		b.mu.Unlock()
		return
	}
	b.current = notice
	b.seq++
	b.scheduleClear(b.seq)
	b.mu.Unlock()

	b.enqueue(notice)
}

func (b *Bus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, handler)
}

// Current returns the latest notice that has not expired.
func (b *Bus) Current() Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.cancel()
		if b.timer != nil {
			b.timer.Stop()
		}
		close(b.buffer)
		b.mu.Unlock()
		b.wg.Wait()
	})
}

// scheduleClear must be called with b.mu held.
func (b *Bus) scheduleClear(seq uint64) {
	if b.ttl <= 0 {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		if b.seq != seq || b.ctx.Err() != nil {
			b.mu.Unlock()
			return
		}
		b.current = Notice{Timestamp: time.Now()}
		cleared := b.current
		b.mu.Unlock()

		b.enqueue(cleared)
	})
}

func (b *Bus) enqueue(notice Notice) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.ctx.Err() != nil {
		return
	}
	select {
	case b.buffer <- notice:
	default:
	}
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for notice := range b.buffer {
			b.dispatch(notice)
		}
	}()
}

func (b *Bus) dispatch(notice Notice) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers))
	copy(handlers, b.subscribers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				_ = recover()
			}()
			handler(notice)
		}()
	}
}
