package event

import "reflect"

// Bus is a double-buffered, typed event queue. Events emitted during a tick are
// collected in the back buffer; Drain swaps buffers and delivers them once, in
// the order their event types were first seen. Events emitted by handlers while
// draining land in the fresh back buffer and are delivered by the next Drain.
//
// Each event type gets its own typed queue, so emitting does not box events.
// Not safe for concurrent use; Emit, Subscribe and Drain run on the game loop
// goroutine.
type Bus struct {
	queues map[reflect.Type]dispatcher
	order  []dispatcher
}

type dispatcher interface {
	swap()
	dispatch() int
	pending() int
}

type queue[T any] struct {
	front    []T
	back     []T
	handlers []func(T)
}

func (q *queue[T]) swap() {
	q.front, q.back = q.back, q.front[:0]
}

func (q *queue[T]) dispatch() int {
	for _, ev := range q.front {
		for _, h := range q.handlers {
			h(ev)
		}
	}
	n := len(q.front)
	clear(q.front)
	q.front = q.front[:0]
	return n
}

func (q *queue[T]) pending() int { return len(q.back) }

func NewBus() *Bus {
	return &Bus{
		queues: make(map[reflect.Type]dispatcher),
	}
}

func queueFor[T any](b *Bus) *queue[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if d, ok := b.queues[t]; ok {
		return d.(*queue[T])
	}
	q := &queue[T]{
		front: make([]T, 0, 16),
		back:  make([]T, 0, 16),
	}
	b.queues[t] = q
	b.order = append(b.order, q)
	return q
}

// Emit queues an event for the next Drain.
func Emit[T any](b *Bus, event T) {
	q := queueFor[T](b)
	q.back = append(q.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	q := queueFor[T](b)
	q.handlers = append(q.handlers, fn)
}

// Drain delivers every queued event to its handlers and returns how many
// events were delivered.
func (b *Bus) Drain() int {
	for _, q := range b.order {
		q.swap()
	}
	n := 0
	for _, q := range b.order {
		n += q.dispatch()
	}
	return n
}

// Pending returns the number of events waiting for the next Drain.
func (b *Bus) Pending() int {
	n := 0
	for _, q := range b.order {
		n += q.pending()
	}
	return n
}
