package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// postJSON issues one request and decodes the body into out. Non-2xx
// responses surface the upstream body text for the caller's error detail.
func (b *Bridge) postJSON(ctx context.Context, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(data))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (b *Bridge) generateOpenAI(ctx context.Context, req GenerateRequest, history []Turn) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	for _, t := range history {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Message})

	payload := map[string]any{
		"model":    req.Model,
		"messages": messages,
	}

	var out struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}

	headers := map[string]string{"Authorization": "Bearer " + b.keys[ProviderOpenAI]}
	if err := b.postJSON(ctx, b.openAIURL, headers, payload, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (b *Bridge) generateAnthropic(ctx context.Context, req GenerateRequest, history []Turn) (string, error) {
	messages := make([]chatMessage, 0, len(history)+1)
	for _, t := range history {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Message})

	payload := map[string]any{
		"model":      req.Model,
		"system":     req.SystemPrompt,
		"messages":   messages,
		"max_tokens": 2048,
	}

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	headers := map[string]string{
		"x-api-key":         b.keys[ProviderAnthropic],
		"anthropic-version": "2023-06-01",
	}
	if err := b.postJSON(ctx, b.anthropicURL, headers, payload, &out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("anthropic returned no content")
	}
	return out.Content[0].Text, nil
}

func (b *Bridge) generateGemini(ctx context.Context, req GenerateRequest, history []Turn) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	contents := make([]content, 0, len(history)+1)
	for _, t := range history {
		role := t.Role
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: t.Content}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: req.Message}}})

	payload := map[string]any{
		"system_instruction": content{Parts: []part{{Text: req.SystemPrompt}}},
		"contents":           contents,
	}

	var out struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", b.geminiURL, req.Model, b.keys[ProviderGemini])
	if err := b.postJSON(ctx, url, nil, payload, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
