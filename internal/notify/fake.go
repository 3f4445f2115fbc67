package notify

// SentMessage records one delivery attempt handed to the FakeNotifier.
type SentMessage struct {
	UserID  string // empty for broadcasts
	Message string
}

// FakeNotifier records sent messages for test assertions.
type FakeNotifier struct {
	// Sent contains every successful delivery, in order.
	Sent []SentMessage

	// SendError, if set, is returned by Send and Broadcast. Attempts made
	// while it is set are counted but not recorded as sent.
	SendError error

	// Attempts counts all calls to Send and Broadcast.
	Attempts int
}

// NewFakeNotifier creates a FakeNotifier.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

// Send records a per-user delivery.
func (f *FakeNotifier) Send(userID, message string) error {
	f.Attempts++
	if f.SendError != nil {
		return f.SendError
	}
	f.Sent = append(f.Sent, SentMessage{UserID: userID, Message: message})
	return nil
}

// Broadcast records a broadcast delivery.
func (f *FakeNotifier) Broadcast(message string) error {
	f.Attempts++
	if f.SendError != nil {
		return f.SendError
	}
	f.Sent = append(f.Sent, SentMessage{Message: message})
	return nil
}
