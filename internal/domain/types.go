package domain

// Role tags one side of the conversation with the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn (user or assistant) in a session's conversation,
// and the provider-agnostic message shape handed to the model gateway.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
