// README: Model gateway contract shared by the OpenAI and Gemini backends.
package ai

import "context"

// CompletionClient is the contract for a chat-completion backend.
// Implementations hold network resources from construction until Close;
// Close is idempotent and safe to call even if Complete was never used.
type CompletionClient interface {
	// Complete sends the ordered message transcript and returns the reply text.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	Close() error
}

// ClientFactory builds a fresh CompletionClient. Components that acquire and
// release a gateway per call (the entity extractor) take one of these instead
// of a shared client.
type ClientFactory func() (CompletionClient, error)
