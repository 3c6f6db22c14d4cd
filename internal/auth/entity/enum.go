package entity

// Channel identifies which contact address a verification challenge targets.
type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelPhone   Channel = 1
	ChannelEmail   Channel = 2
)

func (c Channel) String() string {
	switch c {
	case ChannelPhone:
		return "phone"
	case ChannelEmail:
		return "email"
	default:
		return "unknown"
	}
}
