package utils

import "context"

// ChatTransportInterface opens conversations with a hosted chat model.
type ChatTransportInterface interface {
	StartChat(ctx context.Context, systemPrompt string) (ChatSession, error)
	Close() error
}

// ChatSession keeps the history of one conversation. Turns must not overlap.
type ChatSession interface {
	SendMessageStream(ctx context.Context, message string) (FragmentStream, error)
}

// FragmentStream yields reply text in order. Next returns io.EOF after the last fragment.
type FragmentStream interface {
	Next() (string, error)
	Close() error
}
