package mqtt

// FakePublisher records published payloads for test assertions.
type FakePublisher struct {
	// GasStatuses contains all gas telemetry payloads published.
	GasStatuses []GasStatus

	// ClimateStatuses contains all climate telemetry payloads published.
	ClimateStatuses []ClimateStatus

	// AlarmLogs contains all alarm log payloads published.
	AlarmLogs []AlarmLog

	// PublishError, if set, will be returned by every publish method.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Connected: true}
}

// PublishGas records the gas telemetry payload.
func (f *FakePublisher) PublishGas(s GasStatus) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.GasStatuses = append(f.GasStatuses, s)
	return nil
}

// PublishClimate records the climate telemetry payload.
func (f *FakePublisher) PublishClimate(s ClimateStatus) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.ClimateStatuses = append(f.ClimateStatuses, s)
	return nil
}

// PublishAlarm records the alarm log payload.
func (f *FakePublisher) PublishAlarm(l AlarmLog) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.AlarmLogs = append(f.AlarmLogs, l)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// FakeCommands is a CommandSource fed from a slice.
type FakeCommands struct {
	// Queue contains commands returned by Poll, first to last.
	Queue []Command
}

// NewFakeCommands creates a FakeCommands with the given queue.
func NewFakeCommands(cmds ...Command) *FakeCommands {
	return &FakeCommands{Queue: cmds}
}

// Push appends a command to the queue.
func (f *FakeCommands) Push(cmd Command) {
	f.Queue = append(f.Queue, cmd)
}

// Poll pops the next queued command, if any.
func (f *FakeCommands) Poll() (Command, bool) {
	if len(f.Queue) == 0 {
		return Command{}, false
	}
	cmd := f.Queue[0]
	f.Queue = f.Queue[1:]
	return cmd, true
}
