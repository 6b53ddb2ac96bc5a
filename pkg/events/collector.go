package events

// Recorder buffers the events an aggregate raises until the caller has
// persisted the aggregate and is ready to publish them.
type Recorder struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (r *Recorder) Record(evts ...DomainEvent) {
	r.pending = append(r.pending, evts...)
}

// Pending returns a copy of the queued events.
func (r *Recorder) Pending() []DomainEvent {
	if len(r.pending) == 0 {
		return nil
	}
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}

// Drain hands over the queued events and empties the buffer.
func (r *Recorder) Drain() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}
