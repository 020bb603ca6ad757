package domain

// UpdateEvent describes a value committed to a store.
type UpdateEvent struct {
	Store string `json:"store"`
	Prev  any    `json:"prev"`
	Next  any    `json:"next"`
}

// NotifyEvent describes a state delivered to a subscriber.
type NotifyEvent struct {
	Store string `json:"store"`
	State any    `json:"state"`
}

// ListenerErrorEvent describes a subscriber that panicked.
type ListenerErrorEvent struct {
	Store string `json:"store"`
	Err   error  `json:"-"`
}

// LifecycleHooks defines callbacks for store observability.
// Every field is optional.
type LifecycleHooks struct {
	OnUpdate        func(*UpdateEvent)
	OnNotify        func(*NotifyEvent)
	OnListenerError func(*ListenerErrorEvent)
}

// MergeHooks returns hooks that call each of the given hooks in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnUpdate != nil {
			prev := merged.OnUpdate
			merged.OnUpdate = func(e *UpdateEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnUpdate(e)
			}
		}
		if h.OnNotify != nil {
			prev := merged.OnNotify
			merged.OnNotify = func(e *NotifyEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnNotify(e)
			}
		}
		if h.OnListenerError != nil {
			prev := merged.OnListenerError
			merged.OnListenerError = func(e *ListenerErrorEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnListenerError(e)
			}
		}
	}
	return merged
}
