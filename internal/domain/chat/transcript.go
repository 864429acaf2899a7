package chat

import (
	"context"
	"errors"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrSendInFlight = errors.New("a message is already being sent")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

// Request is what the completion service sees for one send: the whole
// transcript in order, ending with the new user turn.
type Request struct {
	Turns             []Turn
	SystemInstruction string
	Temperature       float32
}

type Response struct {
	Text string
}

// Completer is the external completion service. Any returned error is
// treated the same way regardless of its cause.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, req Request) (Response, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
