package llmsvc

import "context"

// Completion message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

// Client is any client of a hosted chat-completion API.
type Client interface {
	// Chat sends one exchange and returns the text content of the reply.
	Chat(ctx context.Context, messages []Message) (string, error)
}
