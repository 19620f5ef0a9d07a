package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChatClient implements ChatTransportInterface with chat completion streams.
type OpenAIChatClient struct {
	apiKey string
	model  string
	client *openai.Client
}

func NewOpenAIChatClient(apiKey, model string) ChatTransportInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIChatClient{apiKey: apiKey, model: model, client: openai.NewClient(apiKey)}
}

func (c *OpenAIChatClient) StartChat(ctx context.Context, systemPrompt string) (ChatSession, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingAPIKey)
	}
	return &openAISession{
		client: c.client,
		model:  c.model,
		history: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
	}, nil
}

func (c *OpenAIChatClient) Close() error {
	return nil
}

// openAISession keeps the message history itself; the API is stateless.
type openAISession struct {
	client *openai.Client
	model  string

	mu      sync.Mutex
	history []openai.ChatCompletionMessage
}

func (s *openAISession) SendMessageStream(ctx context.Context, message string) (FragmentStream, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}

	s.mu.Lock()
	msgs := append(append([]openai.ChatCompletionMessage{}, s.history...),
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
	s.mu.Unlock()

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    msgs,
		Temperature: 0.7,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return &openAIStream{session: s, stream: stream, sent: msgs}, nil
}

type openAIStream struct {
	session *openAISession
	stream  *openai.ChatCompletionStream
	sent    []openai.ChatCompletionMessage
	reply   strings.Builder
	done    bool
}

func (s *openAIStream) Next() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			s.commit()
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("openai: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		chunk := resp.Choices[0].Delta.Content
		s.reply.WriteString(chunk)
		return chunk, nil
	}
}

// commit records the finished exchange so the next turn sees it.
func (s *openAIStream) commit() {
	if s.done {
		return
	}
	s.done = true
	s.session.mu.Lock()
	defer s.session.mu.Unlock()
	s.session.history = append(s.sent, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: s.reply.String(),
	})
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
