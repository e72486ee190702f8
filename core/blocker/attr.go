package blocker

import "fmt"

// Attr configures a Blocker.
type Attr struct {
	// Capacity is the maximum number of messages retained in each history.
	Capacity int `yaml:"capacity"`
	// ChannelName identifies the channel the Blocker backs.
	ChannelName string `yaml:"name"`
}

// NewAttr returns an Attr with the given capacity and channel name.
func NewAttr(capacity int, channelName string) Attr {
	return Attr{Capacity: capacity, ChannelName: channelName}
}

// Validate reports whether the attributes can be used to build a Blocker.
func (a Attr) Validate() error {
	if a.Capacity <= 0 {
		return fmt.Errorf("%w: got %d for channel %q", ErrInvalidCapacity, a.Capacity, a.ChannelName)
	}
	return nil
}
