package domain

import "errors"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	SenderUser  = "user"
	SenderCoach = "coach"
)

// ChatTurn is one role-tagged message sent to the completion service.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryEntry is a prior conversation turn as supplied by the caller.
// Any Sender other than SenderUser is treated as the coach.
type HistoryEntry struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// GenerationParams are the fixed sampling settings for one completion call.
type GenerationParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// ErrEmptyCompletion reports an upstream reply that carried no usable text.
var ErrEmptyCompletion = errors.New("empty completion")
