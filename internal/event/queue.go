package event

// Queue is a FIFO of pending events. It is filled by native callbacks and
// drained by the frame loop on the same goroutine, so it takes no locks.
// The zero value is an empty queue ready to use.
type Queue struct {
	events []Event
	head   int
}

// Push appends ev to the back of the queue. The queue owns ev from now on;
// its timestamp can no longer be changed. Nil events are ignored.
func (q *Queue) Push(ev Event) {
	if IsNil(ev) {
		return
	}
	ev.base().queued = true
	q.events = append(q.events, ev)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events) - q.head
}

// Pop removes and returns the event at the front of the queue.
// It returns false if the queue is empty.
func (q *Queue) Pop() (Event, bool) {
	if q.Len() == 0 {
		return nil, false
	}
	ev := q.events[q.head]
	q.events[q.head] = nil
	q.head++
	switch {
	case q.head == len(q.events):
		q.events = q.events[:0]
		q.head = 0
	case q.head > len(q.events)/2:
		// Reclaim the popped front so a queue that never empties does
		// not grow without bound.
		n := copy(q.events, q.events[q.head:])
		clear(q.events[n:])
		q.events = q.events[:n]
		q.head = 0
	}
	return ev, true
}

// Drain pops the events that were pending when Drain was called and passes
// each to fn. Events pushed while draining, for example by a handler, stay
// in the queue for the next Drain. It returns the number of events drained
// and how many of them fn reported as handled.
func (q *Queue) Drain(fn func(Event) bool) (drained, handled int) {
	n := q.Len()
	for i := 0; i < n; i++ {
		ev, _ := q.Pop()
		drained++
		if fn(ev) {
			handled++
		}
	}
	return drained, handled
}

// Clear drops all pending events.
func (q *Queue) Clear() {
	clear(q.events)
	q.events = q.events[:0]
	q.head = 0
}
