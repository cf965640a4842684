package mqtt

import "sync"

// inboundQueue is a fixed-capacity FIFO holding messages between ticks.
// Paho delivers on its own goroutine while the loop polls, so the queue is
// safe for concurrent use. When full, the oldest message is dropped: a
// stale command is worth less than a fresh one.
type inboundQueue struct {
	mu       sync.Mutex
	buf      []Message
	capacity int
	head     int // next write position
	count    int
}

func newInboundQueue(capacity int) *inboundQueue {
	return &inboundQueue{
		buf:      make([]Message, capacity),
		capacity: capacity,
	}
}

// push appends a message, reporting whether an older one was dropped.
func (q *inboundQueue) push(msg Message) (dropped bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == q.capacity {
		// Overwrite oldest: head is already pointing at it
		q.buf[q.head] = msg
		q.head = (q.head + 1) % q.capacity
		return true
	}
	q.buf[q.head] = msg
	q.head = (q.head + 1) % q.capacity
	q.count++
	return false
}

// pop removes and returns the oldest message, if any.
func (q *inboundQueue) pop() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return Message{}, false
	}
	// Oldest item is at (head - count) mod capacity
	oldest := (q.head - q.count + q.capacity) % q.capacity
	msg := q.buf[oldest]
	q.buf[oldest] = Message{}
	q.count--
	return msg, true
}

func (q *inboundQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
