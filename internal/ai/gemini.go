// README: Gemini-backed gateway using Google's official SDK.
package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements CompletionClient on top of the genai SDK. It is an
// alternative gateway backend selected by configuration; there is no fallback
// chain because the chain identities are OpenAI model names.
type GeminiClient struct {
	client    *genai.Client
	model     string
	closeOnce sync.Once
	closeErr  error
}

// NewGeminiClient acquires the underlying genai connection. model may be
// empty, in which case gemini-2.0-flash is used.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Complete flattens the role/content transcript into a single prompt; the
// genai API has no direct equivalent of the OpenAI message list for this use.
func (g *GeminiClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	if opts.Temperature != 0 {
		model.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxTokens != 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.TopP != 0 {
		model.SetTopP(float32(opts.TopP))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(flattenTranscript(messages)))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.Join(parts, "\n"), nil
}

// Close releases the genai connection. Safe to call multiple times.
func (g *GeminiClient) Close() error {
	g.closeOnce.Do(func() {
		g.closeErr = g.client.Close()
	})
	return g.closeErr
}

func flattenTranscript(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			b.WriteString("Instructions: ")
		case RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
