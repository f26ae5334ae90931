package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ai-character-chat/backend/pkg/config"
	"ai-character-chat/backend/pkg/logger"
	"ai-character-chat/backend/pkg/metrics"
	"ai-character-chat/backend/pkg/secrets"
)

// ErrProviderNotConfigured is returned when the requested provider has no
// API key. The chat orchestrator maps it to an invalid-input failure before
// any message is persisted.
type ErrProviderNotConfigured struct {
	Provider string
}

func (e *ErrProviderNotConfigured) Error() string {
	return fmt.Sprintf("provider %s is not configured: missing API key", e.Provider)
}

// GenerateRequest carries one chat turn to the external provider.
// ContinuityKey (conversation or room id) selects the replayed transcript.
type GenerateRequest struct {
	Provider      string
	Model         string
	SystemPrompt  string
	Message       string
	ContinuityKey string
}

// Gateway generates a character reply for a user message. Implementations
// make exactly one external call per request: no retry, no streaming.
type Gateway interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	HasKey(provider string) bool
	Catalog() []ProviderInfo
}

// Bridge is the HTTP gateway to the chat-completion providers. All keys and
// endpoints are resolved at construction time; nothing reads the
// environment per request.
type Bridge struct {
	httpClient *http.Client
	keys       map[string]string
	history    *HistoryStore
	log        *logger.Logger

	// Endpoint overrides, settable in tests.
	openAIURL    string
	anthropicURL string
	geminiURL    string
}

// NewBridge builds the gateway. Provider keys are resolved through the
// secrets manager (Vault when configured) with the injected config values
// as fallback; a provider with no key is carried as unavailable rather
// than failing startup.
func NewBridge(cfg *config.Config, sm secrets.Manager, history *HistoryStore, log *logger.Logger) *Bridge {
	ctx := context.Background()

	keys := map[string]string{
		ProviderOpenAI:    cfg.Providers.OpenAIKey,
		ProviderAnthropic: cfg.Providers.AnthropicKey,
		ProviderGemini:    cfg.Providers.GeminiKey,
	}
	if sm != nil {
		keys[ProviderOpenAI] = sm.GetSecretWithDefault(ctx, "OPENAI_API_KEY", keys[ProviderOpenAI])
		keys[ProviderAnthropic] = sm.GetSecretWithDefault(ctx, "ANTHROPIC_API_KEY", keys[ProviderAnthropic])
		keys[ProviderGemini] = sm.GetSecretWithDefault(ctx, "GEMINI_API_KEY", keys[ProviderGemini])
	}

	timeout := cfg.Providers.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Bridge{
		httpClient:   &http.Client{Timeout: timeout},
		keys:         keys,
		history:      history,
		log:          log,
		openAIURL:    "https://api.openai.com/v1/chat/completions",
		anthropicURL: "https://api.anthropic.com/v1/messages",
		geminiURL:    "https://generativelanguage.googleapis.com/v1beta",
	}
}

// HasKey reports whether provider has an API key configured.
func (b *Bridge) HasKey(provider string) bool {
	return b.keys[provider] != ""
}

// Generate performs one chat-completion call, replaying the transcript
// held under the continuity key and appending both turns on success.
func (b *Bridge) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if !b.HasKey(req.Provider) {
		return "", &ErrProviderNotConfigured{Provider: req.Provider}
	}

	var history []Turn
	if b.history != nil && req.ContinuityKey != "" {
		var err error
		history, err = b.history.Load(ctx, req.ContinuityKey)
		if err != nil {
			// A cold transcript degrades coherence, not correctness.
			b.log.Warn("failed to load chat history", "key", req.ContinuityKey, "error", err.Error())
			history = nil
		}
	}

	start := time.Now()
	var reply string
	var err error

	switch req.Provider {
	case ProviderOpenAI:
		reply, err = b.generateOpenAI(ctx, req, history)
	case ProviderAnthropic:
		reply, err = b.generateAnthropic(ctx, req, history)
	case ProviderGemini:
		reply, err = b.generateGemini(ctx, req, history)
	default:
		return "", fmt.Errorf("unsupported provider: %s", req.Provider)
	}

	metrics.LLMLatency.WithLabelValues(req.Provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatFailures.WithLabelValues(req.Provider, "upstream").Inc()
		return "", err
	}

	if b.history != nil && req.ContinuityKey != "" {
		if err := b.history.Append(ctx, req.ContinuityKey, Turn{Role: "user", Content: req.Message}); err != nil {
			b.log.Warn("failed to append user turn", "key", req.ContinuityKey, "error", err.Error())
		}
		if err := b.history.Append(ctx, req.ContinuityKey, Turn{Role: "assistant", Content: reply}); err != nil {
			b.log.Warn("failed to append assistant turn", "key", req.ContinuityKey, "error", err.Error())
		}
	}

	return reply, nil
}
