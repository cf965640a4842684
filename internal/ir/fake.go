package ir

// FakeTransmitter records transmitted tables for test assertions.
type FakeTransmitter struct {
	// Tables contains every table passed to Transmit, in order.
	Tables []Table

	// TransmitError, if set, will be returned by Transmit.
	TransmitError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeTransmitter creates a FakeTransmitter for testing.
func NewFakeTransmitter() *FakeTransmitter {
	return &FakeTransmitter{}
}

// Transmit records the table.
func (f *FakeTransmitter) Transmit(t Table) error {
	if f.TransmitError != nil {
		return f.TransmitError
	}
	f.Tables = append(f.Tables, t)
	return nil
}

// Close marks the transmitter as closed.
func (f *FakeTransmitter) Close() error {
	f.Closed = true
	return nil
}

// Names returns the names of all transmitted tables, for terse assertions.
func (f *FakeTransmitter) Names() []string {
	names := make([]string, len(f.Tables))
	for i, t := range f.Tables {
		names[i] = t.Name
	}
	return names
}

// Reset clears recorded tables.
func (f *FakeTransmitter) Reset() {
	f.Tables = nil
	f.TransmitError = nil
	f.Closed = false
}
