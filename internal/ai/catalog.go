package ai

// Provider identifiers. The catalog below is the static allow-list used to
// validate conversation AI settings; the chat path trusts stored values
// without re-checking.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ProviderInfo describes one provider entry of the public catalog.
type ProviderInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Models    []string `json:"models"`
	Available bool     `json:"available"`
}

var providerNames = map[string]string{
	ProviderOpenAI:    "OpenAI GPT",
	ProviderAnthropic: "Anthropic Claude",
	ProviderGemini:    "Google Gemini",
}

var providerModels = map[string][]string{
	ProviderOpenAI: {
		"gpt-4.1",
		"gpt-4.1-mini",
		"gpt-4o",
		"gpt-4o-mini",
		"o1",
		"o1-mini",
	},
	ProviderAnthropic: {
		"claude-3-7-sonnet-20250219",
		"claude-3-5-sonnet-20241022",
		"claude-3-5-haiku-20241022",
	},
	ProviderGemini: {
		"gemini-2.0-flash",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	},
}

// KnownProvider reports whether id names a supported provider.
func KnownProvider(id string) bool {
	_, ok := providerModels[id]
	return ok
}

// KnownModel reports whether model is in the allow-list for provider.
func KnownModel(provider, model string) bool {
	for _, m := range providerModels[provider] {
		if m == model {
			return true
		}
	}
	return false
}

// DefaultModel returns the first catalog model for provider.
func DefaultModel(provider string) string {
	models := providerModels[provider]
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// Catalog returns the provider catalog with availability derived from
// API-key presence.
func (b *Bridge) Catalog() []ProviderInfo {
	out := make([]ProviderInfo, 0, len(providerModels))
	for _, id := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		out = append(out, ProviderInfo{
			ID:        id,
			Name:      providerNames[id],
			Models:    providerModels[id],
			Available: b.HasKey(id),
		})
	}
	return out
}
