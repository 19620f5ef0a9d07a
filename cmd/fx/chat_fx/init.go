package chat_fx

import (
	"context"
	"log"

	"concierge/internal/infra"
	"concierge/pkg/utils"

	"go.uber.org/fx"
)

var Module = fx.Provide(ProvideChatTransport)

// ProvideChatTransport picks the chat provider from configuration. A missing key is not fatal:
// the concierge reports it as an initialization error instead.
func ProvideChatTransport(lc fx.Lifecycle, cfg *infra.Config) utils.ChatTransportInterface {
	var transport utils.ChatTransportInterface
	switch cfg.ChatProvider {
	case "openai":
		log.Printf("Initializing OpenAI chat transport with model: %s", cfg.OpenAIModel)
		transport = utils.NewOpenAIChatClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		if cfg.ChatProvider != "gemini" {
			log.Printf("Unsupported chat provider %q, falling back to gemini", cfg.ChatProvider)
		}
		log.Printf("Initializing Gemini chat transport with model: %s", cfg.GeminiModel)
		transport = utils.NewGeminiChatClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return transport.Close()
		},
	})
	return transport
}
