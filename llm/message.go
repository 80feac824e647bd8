package llm

// Role indicates the role of a message in a conversation. The known roles
// are "system", "user" and "assistant"; anything else is carried verbatim
// and each adapter decides how to render it.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
)

func (r Role) String() string {
	return string(r)
}

// IsKnown reports whether r is one of System, User or Assistant.
func (r Role) IsKnown() bool {
	switch r {
	case System, User, Assistant:
		return true
	}
	return false
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage returns a message with an arbitrary role.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// NewSystemMessage returns a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: System, Content: content}
}

// NewUserMessage returns a user message.
func NewUserMessage(content string) Message {
	return Message{Role: User, Content: content}
}

// NewAssistantMessage returns an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: Assistant, Content: content}
}

// Messages is a convenience for building a conversation inline.
func Messages(messages ...Message) []Message {
	return messages
}
