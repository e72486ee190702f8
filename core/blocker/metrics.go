package blocker

// Metrics receives Blocker activity. Implementations must be safe for concurrent use
// and must not call back into the Blocker.
type Metrics interface {
	// Published is called once per accepted message.
	Published(channel string)
	// Evicted is called with the number of messages dropped by capacity eviction.
	Evicted(channel string, n int)
	// Observed is called after each snapshot with the snapshot size.
	Observed(channel string, size int)
	// CallbackFailed is called when a subscriber callback panics.
	CallbackFailed(channel, subscriber string)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) Published(string)              {}
func (NopMetrics) Evicted(string, int)           {}
func (NopMetrics) Observed(string, int)          {}
func (NopMetrics) CallbackFailed(string, string) {}
