package input

import "sync"

// Bus is a Source that fans events out to its subscribers in
// subscription order. Hosts feed it from their own event loop.
type Bus struct {
	mu       sync.Mutex
	next     int
	handlers map[int]Handler
	order    []int
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: map[int]Handler{}}
}

// Subscribe registers h until the returned function is called
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Len returns the number of subscribers
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus) snapshot() []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	return hs
}

// Pointer delivers a pointer event
func (b *Bus) Pointer(e PointerEvent) {
	for _, h := range b.snapshot() {
		h.HandlePointer(e)
	}
}

// Key delivers a key event
func (b *Bus) Key(e KeyEvent) {
	for _, h := range b.snapshot() {
		h.HandleKey(e)
	}
}
