package mqtt

// FakeMessenger records outbound notices and feeds scripted inbound
// messages for test assertions.
type FakeMessenger struct {
	// Inbound contains scripted messages; each Poll consumes one.
	Inbound []Message

	// index tracks current position in Inbound
	index int

	// Occupancies contains all published occupancy deltas.
	Occupancies []int

	// Temperatures contains all published temperature notices.
	Temperatures []float64

	// Logs contains all published log notices.
	Logs []string

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by every notice publish.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakeMessenger creates a FakeMessenger for testing.
func NewFakeMessenger() *FakeMessenger {
	return &FakeMessenger{}
}

// Poll returns the next scripted inbound message, if any.
func (f *FakeMessenger) Poll() (Message, bool) {
	if f.index >= len(f.Inbound) {
		return Message{}, false
	}
	msg := f.Inbound[f.index]
	f.index++
	return msg, true
}

// PublishOccupancy records the delta.
func (f *FakeMessenger) PublishOccupancy(delta int) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Occupancies = append(f.Occupancies, delta)
	return nil
}

// PublishTemperature records the temperature.
func (f *FakeMessenger) PublishTemperature(celsius float64) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Temperatures = append(f.Temperatures, celsius)
	return nil
}

// PublishLog records the log notice.
func (f *FakeMessenger) PublishLog(message string) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Logs = append(f.Logs, message)
	return nil
}

// PublishSystem records the system event.
func (f *FakeMessenger) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the messenger as closed.
func (f *FakeMessenger) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake messenger is "connected".
func (f *FakeMessenger) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded notices and the inbound script.
func (f *FakeMessenger) Reset() {
	f.Inbound = nil
	f.index = 0
	f.Occupancies = nil
	f.Temperatures = nil
	f.Logs = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Closed = false
	f.Connected = false
}
