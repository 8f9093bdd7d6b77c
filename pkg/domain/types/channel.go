package types

import "fmt"

// Channel represents how a case reached the help desk
type Channel string

const (
	ChannelChat   Channel = "Chat"
	ChannelEmail  Channel = "Email"
	ChannelPhone  Channel = "Phone"
	ChannelForm   Channel = "Form"
	ChannelWalkIn Channel = "Walk-in"
)

// AllChannels returns all valid channels
func AllChannels() []Channel {
	return []Channel{
		ChannelChat,
		ChannelEmail,
		ChannelPhone,
		ChannelForm,
		ChannelWalkIn,
	}
}

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	switch c {
	case ChannelChat, ChannelEmail, ChannelPhone, ChannelForm, ChannelWalkIn:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// ParseChannel parses a string into a Channel
func ParseChannel(s string) (Channel, error) {
	ch := Channel(s)
	if !ch.IsValid() {
		return "", fmt.Errorf("invalid channel: %s", s)
	}
	return ch, nil
}
