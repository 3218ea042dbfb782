package domain

// RichBlock is an embedded rich-content block attached to a channel message
// (title + description are the only fields the classifier inspects).
type RichBlock struct {
	Title       string
	Description string
}

// ChannelEvent is a transport-neutral view of one inbound channel message.
// The gateway adapter fills it in; the core never sees gateway types.
type ChannelEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string

	// FromService is true when the message was authored by the tracked
	// listing service's account.
	FromService bool

	// AuthorBot is true for any bot-authored message (the guard ignores
	// bots; the classifier only cares about the tracked service).
	AuthorBot bool

	// AuthorAdmin is true when the author holds administrator permission
	// in the guild. Used by the channel guard's admin exemption.
	AuthorAdmin bool

	// InvocationName carries the slash-command name when the message was
	// produced by a command interaction, empty otherwise.
	InvocationName string

	// InvocationUserID is the user who triggered the interaction that
	// produced this message. Empty when InvocationName is empty.
	InvocationUserID string

	Content    string
	RichBlocks []RichBlock
}

// Kind is the classification assigned to a channel event.
type Kind int

const (
	// KindIrrelevant events never cause any side effect.
	KindIrrelevant Kind = iota
	// KindInvocation is the service echoing a tracked slash-command use.
	KindInvocation
	// KindManualTrigger is a regular user typing the trigger phrase.
	KindManualTrigger
	// KindConfirmation is a public outcome message from the service.
	KindConfirmation
	// KindRejection is the service echoing a non-tracked command; the
	// watched channel is reserved, so these are deleted outright.
	KindRejection
)

func (k Kind) String() string {
	switch k {
	case KindInvocation:
		return "invocation"
	case KindManualTrigger:
		return "manual_trigger"
	case KindConfirmation:
		return "confirmation"
	case KindRejection:
		return "rejection"
	default:
		return "irrelevant"
	}
}

// Classification is the pure output of the classifier. The orchestrator
// applies all side effects based on it.
type Classification struct {
	Kind Kind

	// InitiatorID is the user who invoked the command or typed the manual
	// trigger. Set for KindInvocation and KindManualTrigger.
	InitiatorID string

	// Success reports the confirmation outcome. Only meaningful for
	// KindConfirmation.
	Success bool

	// AlsoConfirmation is set on a KindInvocation whose message already
	// carries visible content: the same event must continue evaluation as
	// a confirmation candidate in the same pass.
	AlsoConfirmation *Classification
}
