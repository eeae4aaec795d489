// README: Chat handler; runs the conversation pipeline for one turn.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jetzy/internal/links"
	"jetzy/internal/modules/conversation"
)

// chatTimeout bounds a full turn: extraction, provider search, synthesis.
const chatTimeout = 60 * time.Second

type ChatHandler struct {
	conv *conversation.Service
}

func NewChatHandler(conv *conversation.Service) *ChatHandler {
	return &ChatHandler{conv: conv}
}

type chatReq struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResp struct {
	ResponseID string       `json:"response_id"`
	Text       string       `json:"text"`
	Links      []links.Link `json:"links"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing user_id or message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	reply, err := h.conv.ProcessMessage(ctx, req.UserID, req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	lks := reply.Links
	if lks == nil {
		lks = []links.Link{}
	}
	writeJSON(c, http.StatusOK, chatResp{
		ResponseID: uuid.NewString(),
		Text:       links.FormatText(reply.Text),
		Links:      lks,
		CreatedAt:  time.Now().UTC(),
	})
}
