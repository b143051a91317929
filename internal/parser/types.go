package parser

import "time"

// RoleType identifies the author of a message.
type RoleType string

const (
	RoleUser      RoleType = "user"
	RoleAssistant RoleType = "assistant"
	RoleSystem    RoleType = "system"
	RoleTool      RoleType = "tool"
)

// Message is a single normalized chat message. CreatedAt is the
// zero time when the export carried no parseable timestamp; such
// messages are excluded from all window computation downstream.
type Message struct {
	Role      RoleType
	CreatedAt time.Time
	Text      string
}

// Thread is one normalized conversation in chronological order.
type Thread struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Messages  []Message
}

// Export is the result of normalizing a raw export document.
// Zero threads means the document had a recognized-but-empty or
// unrecognized shape; it is not an error.
type Export struct {
	Threads []Thread
}
