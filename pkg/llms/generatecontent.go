package llms

// Role is the type of chat message.
type Role string

const (
	// RoleAI is a message sent by the model.
	RoleAI Role = "ai"
	// RoleHuman is a message sent by a human.
	RoleHuman Role = "human"
	// RoleSystem is a message sent by the system.
	RoleSystem Role = "system"
	// RoleTool is a message carrying a tool observation.
	RoleTool Role = "tool"
)

// Message is one entry of the transcript sent to a LLM.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MessageFromText creates a Message with the given role and text.
func MessageFromText(role Role, text string) Message {
	return Message{Role: role, Content: text}
}

// ContentChoice is one of the response choices returned by the model.
type ContentChoice struct {
	// Content is the textual content of a response.
	Content string

	// StopReason is the reason the model stopped generating output.
	StopReason string

	// GenerationInfo is arbitrary provider metadata about the generation.
	GenerationInfo map[string]any
}

// Usage holds the token accounting of a single generation.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ContentResponse is the response returned by a GenerateContent call.
type ContentResponse struct {
	Choices []*ContentChoice
	Usage   Usage
}
