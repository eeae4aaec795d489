// README: Per-user conversation state shared across chat turns.
package usercontext

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// maxHistory bounds the stored transcript; older turns are discarded.
	maxHistory = 50
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UserContext struct {
	UserID          string            `json:"user_id"`
	History         []Turn            `json:"conversation_history"`
	LastInteraction time.Time         `json:"last_interaction"`
	Location        string            `json:"location,omitempty"`
	Preferences     map[string]string `json:"preferences,omitempty"`
}

func New(userID string) *UserContext {
	return &UserContext{
		UserID:      userID,
		Preferences: map[string]string{},
	}
}

// AppendTurn records a transcript turn and bumps the interaction time.
func (c *UserContext) AppendTurn(role, content string, at time.Time) {
	c.History = append(c.History, Turn{Role: role, Content: content})
	if len(c.History) > maxHistory {
		c.History = c.History[len(c.History)-maxHistory:]
	}
	c.LastInteraction = at
}

// LastTurns returns up to n most recent turns, oldest first.
func (c *UserContext) LastTurns(n int) []Turn {
	if n <= 0 || len(c.History) == 0 {
		return nil
	}
	if len(c.History) <= n {
		return c.History
	}
	return c.History[len(c.History)-n:]
}

func (c *UserContext) clone() *UserContext {
	out := *c
	out.History = append([]Turn(nil), c.History...)
	out.Preferences = make(map[string]string, len(c.Preferences))
	for k, v := range c.Preferences {
		out.Preferences[k] = v
	}
	return &out
}
