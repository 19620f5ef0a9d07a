package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiChatClient implements ChatTransportInterface on Google's Gemini models
type GeminiChatClient struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiChatClient(apiKey, model string) ChatTransportInterface {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiChatClient{apiKey: apiKey, model: model}
}

func (c *GeminiChatClient) StartChat(ctx context.Context, systemPrompt string) (ChatSession, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingAPIKey)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.client = client
	}

	m := c.client.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	m.SetTemperature(0.7)

	return &geminiSession{cs: m.StartChat()}, nil
}

func (c *GeminiChatClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

type geminiSession struct {
	cs *genai.ChatSession
}

func (s *geminiSession) SendMessageStream(ctx context.Context, message string) (FragmentStream, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}
	return &geminiStream{it: s.cs.SendMessageStream(ctx, genai.Text(message))}, nil
}

type geminiStream struct {
	it *genai.GenerateContentResponseIterator
}

// Next skips chunks that carry no text, such as safety or usage-only responses.
func (s *geminiStream) Next() (string, error) {
	for {
		resp, err := s.it.Next()
		if errors.Is(err, iterator.Done) {
			return "", io.EOF
		}
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedBehaviorOfAI, blocked)
		}
		if err != nil {
			return "", fmt.Errorf("gemini: %w", err)
		}
		if text := responseText(resp); text != "" {
			return text, nil
		}
	}
}

func (s *geminiStream) Close() error {
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
