// README: OpenAI chat-completions gateway with a layered model fallback chain.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"jetzy/internal/config"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// attemptTimeout bounds each individual model attempt; a timeout counts as a
// failure for fallback purposes, never an indefinite block.
const attemptTimeout = 30 * time.Second

// ErrNoModels is returned when neither a primary model nor fallbacks are configured.
var ErrNoModels = errors.New("ai: no models configured")

type chatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	MaxTokens        int       `json:"max_tokens"`
	TopP             float64   `json:"top_p"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	PresencePenalty  float64   `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the OpenAI chat-completions endpoint. On failure of the
// primary model it retries the same prompt down the fallback chain, one
// identity at a time, never re-trying an identity already attempted. When the
// whole chain fails the original (primary) error is surfaced; lower-tier
// failures are only logged.
type Client struct {
	apiKey    string
	baseURL   string
	model     string
	fallbacks []string
	defaults  config.ModelConfig
	httpc     *http.Client
	log       *zap.Logger
	closeOnce sync.Once
}

// NewClient builds a Client from the model configuration. The HTTP client is
// acquired here and released by Close.
func NewClient(cfg config.ModelConfig, log *zap.Logger) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   openAIEndpoint,
		model:     cfg.Model,
		fallbacks: cfg.Fallbacks,
		defaults:  cfg,
		httpc:     &http.Client{Timeout: attemptTimeout},
		log:       log,
	}
}

// WithBaseURL points the client at a different completions endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// Complete implements CompletionClient. Responses are never cached; every
// call is a fresh network request.
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	primary := opts.Model
	if primary == "" {
		primary = c.model
	}

	chain := append([]string{primary}, c.fallbacks...)
	attempted := make(map[string]bool, len(chain))

	var firstErr error
	for _, model := range chain {
		if model == "" || attempted[model] {
			continue
		}
		attempted[model] = true

		text, err := c.request(ctx, model, messages, opts)
		if err == nil {
			if firstErr != nil {
				c.log.Info("model fallback succeeded", zap.String("model", model))
			}
			return text, nil
		}
		if firstErr == nil {
			firstErr = err
		} else {
			c.log.Warn("fallback model failed", zap.String("model", model), zap.Error(err))
		}
	}

	if firstErr == nil {
		return "", ErrNoModels
	}
	return "", firstErr
}

func (c *Client) request(ctx context.Context, model string, messages []Message, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	body := chatRequest{
		Model:            model,
		Messages:         messages,
		Temperature:      orDefault(opts.Temperature, c.defaults.Temperature),
		MaxTokens:        orDefaultInt(opts.MaxTokens, c.defaults.MaxTokens),
		TopP:             orDefault(opts.TopP, c.defaults.TopP),
		FrequencyPenalty: orDefault(opts.FrequencyPenalty, c.defaults.FrequencyPenalty),
		PresencePenalty:  orDefault(opts.PresencePenalty, c.defaults.PresencePenalty),
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: model %s: do request: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: model %s: read response: %w", model, err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("ai: model %s: unmarshal response: %w", model, err)
	}
	if cr.Error != nil {
		return "", &APIError{Model: model, Status: resp.StatusCode, Message: cr.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Model: model, Status: resp.StatusCode}
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("ai: model %s: empty choices array (raw: %s)", model, raw)
	}
	return cr.Choices[0].Message.Content, nil
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.httpc.CloseIdleConnections()
	})
	return nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
