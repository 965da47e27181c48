package engine

// Event is a multi-cast event without arguments.
type Event struct {
	listeners []func()
}

// AddListener registers callback; nil is ignored. Listeners run in the
// order they were added.
func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *Event) Invoke() {
	for _, listener := range e.listeners {
		listener()
	}
}

// EventWithArg is a multi-cast event carrying one value.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}
