package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate sends prompt to Gemini with the active key. A quota error moves the
// rotation to the next key for later calls; the failed call is not re-issued.
func (g *implGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	key, idx, err := g.activeKey()
	if err != nil {
		return "", err
	}

	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.contentConfig(opts))
	if err != nil {
		if isQuotaError(err) {
			g.logger.Warn(ctx, "Key %d rate limited, rotating for next call", idx+1)
			g.rotateFrom(idx)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		if !finishedNormally(cand.FinishReason) {
			return "", fmt.Errorf("%w: finish reason %s", ErrTruncated, cand.FinishReason)
		}
		if cand.Content == nil {
			return "", ErrEmptyResponse
		}
		var text string
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	return "", ErrEmptyResponse
}

func (g *implGenerator) contentConfig(opts Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxOutputTokens
		// thinking tokens count against MaxOutputTokens
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}
	if opts.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.System, genai.RoleUser)
	}
	return cfg
}

func (g *implGenerator) activeKey() (string, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.apiKeys) == 0 {
		return "", 0, ErrNoAPIKey
	}
	return g.apiKeys[g.currentKey], g.currentKey, nil
}

// rotateFrom advances past idx unless another call already rotated.
func (g *implGenerator) rotateFrom(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func finishedNormally(reason genai.FinishReason) bool {
	switch reason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return true
	}
	return false
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
