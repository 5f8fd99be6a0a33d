package timer

// Subscription identifies a registered handler.
type Subscription struct {
	eventType EventType
	id        uint64
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Emitter maps event types to ordered handler lists. It is not safe for
// concurrent use; it belongs to the goroutine that owns the timer.
type Emitter struct {
	nextID   uint64
	handlers map[EventType][]subscriber
	channels []chan Event
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[EventType][]subscriber)}
}

// On registers handler for eventType. Handlers run in registration order.
func (emitter *Emitter) On(eventType EventType, handler Handler) Subscription {
	emitter.nextID++
	sub := Subscription{eventType: eventType, id: emitter.nextID}
	emitter.handlers[eventType] = append(emitter.handlers[eventType], subscriber{
		id:      sub.id,
		handler: handler,
	})
	return sub
}

// Off removes a handler registered with On. Unknown subscriptions are ignored.
func (emitter *Emitter) Off(sub Subscription) {
	list := emitter.handlers[sub.eventType]
	for index, entry := range list {
		if entry.id == sub.id {
			emitter.handlers[sub.eventType] = append(list[:index:index], list[index+1:]...)
			return
		}
	}
}

// Subscribe registers a channel observer that receives every event.
// Delivery never blocks: when the buffer is full the event is dropped.
func (emitter *Emitter) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	emitter.channels = append(emitter.channels, ch)
	return ch, func() {
		emitter.unsubscribe(ch)
	}
}

// Emit delivers event to the handlers registered for its type, then to
// channel observers.
func (emitter *Emitter) Emit(event Event) {
	handlers := append([]subscriber(nil), emitter.handlers[event.Type]...)
	for _, entry := range handlers {
		entry.handler(event)
	}

	for _, ch := range emitter.channels {
		select {
		case ch <- event:
		default:
		}
	}
}

// Len returns the number of handlers and channels attached.
func (emitter *Emitter) Len() int {
	total := len(emitter.channels)
	for _, list := range emitter.handlers {
		total += len(list)
	}
	return total
}

// Clear detaches every handler and closes every channel observer.
func (emitter *Emitter) Clear() {
	emitter.handlers = make(map[EventType][]subscriber)
	channels := emitter.channels
	emitter.channels = nil
	for _, ch := range channels {
		close(ch)
	}
}

func (emitter *Emitter) unsubscribe(target chan Event) {
	for index, ch := range emitter.channels {
		if ch == target {
			emitter.channels = append(emitter.channels[:index:index], emitter.channels[index+1:]...)
			close(ch)
			return
		}
	}
}
