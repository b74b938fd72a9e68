package chat

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Message roles, as stored and as rendered by the chat UI.
const (
	RoleHuman = "human"
	RoleAI    = "ai"
)

type (
	Message struct {
		Role      string    `json:"role" bson:"role"`
		Content   string    `json:"content" bson:"content"`
		Timestamp time.Time `json:"timestamp" bson:"timestamp"` // UTC
		Language  string    `json:"language" bson:"language"`
	}

	// Transcript is the ordered chat history for one user, stored as a single
	// document that every save replaces wholesale.
	Transcript struct {
		UserID   string    `json:"user_id" bson:"_id"`
		Messages []Message `json:"messages" bson:"messages"`
	}
)

// NewMessage defines the payload for one chat turn.
type NewMessage struct {
	Message  string `json:"message" validate:"required"`
	Language string `json:"language" validate:"required,oneof=Marathi English"`
	Question string `json:"question" validate:"required"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	return validate.Struct(nm)
}
