package chat

import "time"

const (
	EventMessageSent   = "ChatMessageSent"
	EventReplyReceived = "ChatReplyReceived"
	EventFallbackUsed  = "ChatFallbackUsed"
)

type MessageSent struct {
	Language string    `json:"language"`
	Length   int       `json:"length"`
	Turns    int       `json:"turns"`
	SentAt   time.Time `json:"sent_at"`
}

type ReplyReceived struct {
	Language   string        `json:"language"`
	Length     int           `json:"length"`
	Latency    time.Duration `json:"latency_ns"`
	ReceivedAt time.Time     `json:"received_at"`
}

// FallbackUsed is emitted when a canned reply replaced the service's answer.
// Reason is "empty" or "error".
type FallbackUsed struct {
	Language string    `json:"language"`
	Reason   string    `json:"reason"`
	Error    string    `json:"error,omitempty"`
	UsedAt   time.Time `json:"used_at"`
}
