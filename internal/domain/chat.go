package domain

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "ai"
)

// Recommendation is one structured item suggestion from the assistant.
type Recommendation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ChatMessage is a single turn in a chat transcript. Recommendations is
// populated only on the assistant turn that carries the rendered suggestion
// list; FollowUp only on a follow-up turn.
type ChatMessage struct {
	Role            ChatRole         `json:"role"`
	Text            string           `json:"text"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	FollowUp        bool             `json:"followUp,omitempty"`
}

func UserMessage(text string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Text: text}
}

func AssistantMessage(text string) ChatMessage {
	return ChatMessage{Role: ChatRoleAssistant, Text: text}
}
