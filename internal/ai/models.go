package ai

import "fmt"

// Chat transcript roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in the transcript sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options override the configured generation defaults for one call.
// Zero values mean "use the default".
type Options struct {
	Model            string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// APIError is a failure reported by the completion endpoint itself, as
// opposed to a transport error.
type APIError struct {
	Model   string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: model %s: api error: %s", e.Model, e.Message)
	}
	return fmt.Sprintf("ai: model %s: unexpected status %d", e.Model, e.Status)
}
