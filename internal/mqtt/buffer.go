package mqtt

// pendingMsg stores a serialized message for replay after reconnection.
type pendingMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox is a fixed-capacity FIFO holding telemetry produced while the broker
// connection is down. Oldest messages are overwritten on overflow: recent
// readings matter more than stale ones. Not safe for concurrent use — the
// caller must synchronize.
type outbox struct {
	buf      []pendingMsg
	capacity int
	head     int // next write position
	count    int
	dropped  int // messages overwritten since the last drain
}

func newOutbox(capacity int) *outbox {
	return &outbox{
		buf:      make([]pendingMsg, capacity),
		capacity: capacity,
	}
}

func (o *outbox) push(msg pendingMsg) {
	if o.count == o.capacity {
		// head already points at the oldest entry
		o.buf[o.head] = msg
		o.head = (o.head + 1) % o.capacity
		o.dropped++
		return
	}
	o.buf[o.head] = msg
	o.head = (o.head + 1) % o.capacity
	o.count++
}

// drain returns all pending messages oldest-first and empties the outbox.
func (o *outbox) drain() []pendingMsg {
	if o.count == 0 {
		return nil
	}

	result := make([]pendingMsg, o.count)
	start := (o.head - o.count + o.capacity) % o.capacity
	for i := 0; i < o.count; i++ {
		result[i] = o.buf[(start+i)%o.capacity]
	}

	o.count = 0
	o.head = 0
	o.dropped = 0
	return result
}

func (o *outbox) len() int {
	return o.count
}

// droppedCount reports how many messages were lost to overflow since the
// last drain.
func (o *outbox) droppedCount() int {
	return o.dropped
}
